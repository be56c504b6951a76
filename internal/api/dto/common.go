package dto

// Response unified envelope
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PageQuery page starts at 1
type PageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}
