package httpresp

import "github.com/gin-gonic/gin"

// Page points at a neighbouring page of a paginated listing.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

type ListResponse[T any] struct {
	Success    bool        `json:"success"`
	Count      int         `json:"count"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Data       []T         `json:"data"`
}

type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, Response{Success: true, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(201, Response{Success: true, Data: data})
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Success: true,
		Count:   len(data),
		Data:    data,
	})
}

func PagedList[T any](c *gin.Context, data []T, p *Pagination) {
	c.JSON(200, ListResponse[T]{
		Success:    true,
		Count:      len(data),
		Pagination: p,
		Data:       data,
	})
}
