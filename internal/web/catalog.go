package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/store"
)

// IndexPage handles GET /catalog: the home page with entity counts. The
// three counts are independent, so they are fetched in parallel.
func (s *Server) IndexPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	var itemCount, categoryCount, supplierCount int64
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		itemCount, err = store.CountItems(ctx, s.DB)
		return err
	})
	g.Go(func() (err error) {
		categoryCount, err = store.CountCategories(ctx, s.DB)
		return err
	})
	g.Go(func() (err error) {
		supplierCount, err = store.CountSuppliers(ctx, s.DB)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("failed to count catalog records", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "index.html", &struct {
		PageData
		ItemCount     int64
		CategoryCount int64
		SupplierCount int64
	}{
		PageData:      PageData{Title: "Catalogue Home", User: claims},
		ItemCount:     itemCount,
		CategoryCount: categoryCount,
		SupplierCount: supplierCount,
	})
}

// pathID parses the {id} path segment. The second return value is false if
// the segment is not a valid id, in which case a 400 has been written.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
