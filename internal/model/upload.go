package model

import "time"

// Upload is one entry of the upload ledger. (Country, Filename) is unique.
type Upload struct {
	Country    string    `json:"country"`
	Filename   string    `json:"filename"`
	Filepath   string    `json:"filepath"`
	UploadDate time.Time `json:"upload_date"`
}

// UploadDateLayout is the on-disk timestamp format of the ledger.
const UploadDateLayout = "2006-01-02 15:04:05"
