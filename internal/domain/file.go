package domain

type File struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	VirtualFolder   int64  `json:"virtual_folder"`
	FolderType      string `json:"folder_type"`
	TypeID          int64  `json:"type_id"`
	Size            string `json:"size"`
	SizeByte        int64  `json:"size_byte"`
	SizeString      string `json:"size_string"`
	Width           int64  `json:"width"`
	Height          int64  `json:"height"`
	Extension       string `json:"ext"`
	MimeType        string `json:"mime"`
	Base64          string `json:"base_64,omitempty"`
	Uploaded        int64  `json:"uploaded"`
	Modified        int64  `json:"modified"`
	Permission      string `json:"permission"`
	OwnerID         int64  `json:"owner_id"`
	Owner           User   `json:"owner"`
	LastDownload    int64  `json:"last_download"`
	TimesDownloaded int64  `json:"times_downloaded"`
	Status          string `json:"status"`
	Deleted         bool   `json:"deleted"`
	Encrypted       bool   `json:"encrypted"`
	IV              string `json:"e2e_iv"`
	MD5             string `json:"md5"`
}
