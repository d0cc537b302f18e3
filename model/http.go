package model

type ConvertResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Key      string `json:"key"`
	Time     string `json:"time"`
	Notation string `json:"notation"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
