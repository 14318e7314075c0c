// Package swaggerkit serves the OpenAPI document and swagger UI
package swaggerkit

import (
	"net/http"
	"strings"

	phttp "inputdash/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Options controls where docs live and how the served document is dressed
type Options struct {
	Enabled bool
	// Base is the UI mount point, /api/docs when empty
	Base string
	// Server is the API base url written into servers, /api/v1 when empty
	Server string
	// TitleSuffix is appended to info.title, e.g. an environment name
	TitleSuffix string
}

func (o Options) base() string {
	if b := strings.TrimRight(o.Base, "/"); b != "" {
		return b
	}
	return "/api/docs"
}

func (o Options) server() string {
	if o.Server != "" {
		return o.Server
	}
	return "/api/v1"
}

// Mount serves the UI under Base and the document at Base/doc.json; a no-op when disabled
func Mount(r phttp.Router, o Options) {
	if !o.Enabled {
		return
	}
	base := o.base()
	docURL := base + "/doc.json"
	r.Get(base, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, base+"/", http.StatusPermanentRedirect)
	})
	r.Get(docURL, serveDocJSON(o))
	r.Handle(base+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(docURL),
	))
}
