// Package web serves the embedded single-page client from the fortuned
// binary, so the app deploys as one artifact.
package web

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/labstack/echo/v4"
)

//go:embed static
var staticFS embed.FS

// Register mounts the client at the site root.
func Register(e *echo.Echo) error {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return fmt.Errorf("embedded assets: %w", err)
	}
	e.StaticFS("/", sub)
	return nil
}
