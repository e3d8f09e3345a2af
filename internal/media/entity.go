package media

import "time"

// Upload is a stored media file owned by one hotel.
type Upload struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	HotelID      string    `gorm:"column:hotel_id;index;not null" json:"hotelId"`
	Kind         string    `gorm:"column:kind;size:16;not null" json:"kind"`
	OriginalName string    `gorm:"column:original_name" json:"originalName"`
	FilePath     string    `gorm:"column:file_path" json:"-"`
	FileURL      string    `gorm:"column:file_url;index" json:"url"`
	MimeType     string    `gorm:"column:mime_type" json:"mimeType"`
	Size         int64     `gorm:"column:size" json:"size"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Upload) TableName() string { return "uploads" }

const (
	KindImage = "image"
	KindVideo = "video"
)

// Batch holds the results of one multi-file request, in input order.
type Batch struct {
	Images []*Upload
	Videos []*Upload
}

func (b Batch) ImageURLs() []string { return urls(b.Images) }
func (b Batch) VideoURLs() []string { return urls(b.Videos) }

func (b Batch) all() []*Upload {
	out := make([]*Upload, 0, len(b.Images)+len(b.Videos))
	out = append(out, b.Images...)
	return append(out, b.Videos...)
}

func urls(uploads []*Upload) []string {
	out := make([]string, 0, len(uploads))
	for _, u := range uploads {
		out = append(out, u.FileURL)
	}
	return out
}
