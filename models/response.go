package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

type PaginationLinks struct {
	Self string `json:"self"`
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
}

type HATEOASResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    interface{}     `json:"data"`
	Meta    PaginationMeta  `json:"meta"`
	Links   PaginationLinks `json:"links"`
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Page is a 1-based pagination request. Listings are newest first unless
// Ascending is set.
type Page struct {
	Page      int
	Limit     int
	Ascending bool
}

// Normalize clamps page and limit into their allowed ranges.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (p Page) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

func (p Page) OrderDirection() string {
	if p.Ascending {
		return "ASC"
	}
	return "DESC"
}

func TotalPages(totalItems, limit int) int {
	if totalItems <= 0 || limit <= 0 {
		return 0
	}
	return (totalItems + limit - 1) / limit
}
