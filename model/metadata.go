package model

type Metadata struct {
	Title   string
	Artist  string
	Release string
	Year    uint
}
