package ilias

import "time"

// File is a file hosted on the portal, either a read-only attachment or
// a submitted file.
type File struct {
	Name        string
	Description string
	// Id is set only for files the portal lets the user delete, i.e.
	// submissions. Read-only attachments carry none.
	Id string
	// Download is the querypath serving the file contents, when the
	// portal renders a download link.
	Download Querypath
	// Date is when the file was submitted; zero for attachments.
	Date time.Time
}

// Deletable reports whether the portal accepts a delete request for
// this file.
func (f File) Deletable() bool {
	return f.Id != ""
}
