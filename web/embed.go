// Package web ships the catalog's page templates and static assets inside
// the binary, so a deployment is the executable plus its database file.
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed static templates
var content embed.FS

// StaticFS exposes the stylesheet and other assets served under /static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		log.Fatalf("embedded static assets missing: %v", err)
	}
	return sub
}

// TemplatesFS exposes the HTML templates the page handlers render.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(content, "templates")
	if err != nil {
		log.Fatalf("embedded templates missing: %v", err)
	}
	return sub
}
