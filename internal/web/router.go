package web

import (
	"database/sql"
	"net/http"

	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/config"
	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/media"
	webembed "github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/web"
)

// NewRouter creates the web page router with all catalog routes registered.
func NewRouter(db *sql.DB, cfg *config.Config, uploader media.Uploader) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		Uploader:  uploader,
		Config:    cfg,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(cfg.SessionSecret)

	// Static assets and locally stored product photos.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/catalog", http.StatusSeeOther)
	})

	// Authenticated catalog routes.
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, cookieAuth(h))
	}

	handle("GET /catalog", s.IndexPage)

	handle("GET /catalog/categories", s.CategoryListPage)
	handle("GET /catalog/category/create", s.CategoryCreatePage)
	handle("POST /catalog/category/create", s.CategoryCreateSubmit)
	handle("GET /catalog/category/{id}", s.CategoryDetailPage)
	handle("GET /catalog/category/{id}/update", s.CategoryUpdatePage)
	handle("POST /catalog/category/{id}/update", s.CategoryUpdateSubmit)
	handle("GET /catalog/category/{id}/delete", s.CategoryDeletePage)
	handle("POST /catalog/category/{id}/delete", s.CategoryDeleteSubmit)

	handle("GET /catalog/suppliers", s.SupplierListPage)
	handle("GET /catalog/supplier/create", s.SupplierCreatePage)
	handle("POST /catalog/supplier/create", s.SupplierCreateSubmit)
	handle("GET /catalog/supplier/{id}", s.SupplierDetailPage)
	handle("GET /catalog/supplier/{id}/update", s.SupplierUpdatePage)
	handle("POST /catalog/supplier/{id}/update", s.SupplierUpdateSubmit)
	handle("GET /catalog/supplier/{id}/delete", s.SupplierDeletePage)
	handle("POST /catalog/supplier/{id}/delete", s.SupplierDeleteSubmit)

	handle("GET /catalog/items", s.ItemListPage)
	handle("GET /catalog/item/create", s.ItemCreatePage)
	handle("POST /catalog/item/create", s.ItemCreateSubmit)
	handle("GET /catalog/item/{id}", s.ItemDetailPage)
	handle("GET /catalog/item/{id}/update", s.ItemUpdatePage)
	handle("POST /catalog/item/{id}/update", s.ItemUpdateSubmit)
	handle("GET /catalog/item/{id}/delete", s.ItemDeletePage)
	handle("POST /catalog/item/{id}/delete", s.ItemDeleteSubmit)

	return mux, nil
}
