package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/model"
	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/store"
	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/validate"
)

// maxUploadBytes caps how much of an item form, image included, is held in
// memory while parsing.
const maxUploadBytes = 10 << 20

type itemFormData struct {
	PageData
	Action     string
	Form       url.Values
	Errors     validate.Errors
	Suppliers  []model.Supplier
	Categories []model.Category
}

// ItemListPage handles GET /catalog/items.
func (s *Server) ItemListPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	items, err := store.ListItems(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "item_list.html", &struct {
		PageData
		Items []model.Item
	}{
		PageData: PageData{Title: "Item List", User: claims},
		Items:    items,
	})
}

// ItemDetailPage handles GET /catalog/item/{id}.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	s.Templates.Render(w, "item_detail.html", &struct {
		PageData
		Item *model.Item
	}{
		PageData: PageData{Title: "Item Detail", User: claims},
		Item:     item,
	})
}

// ItemCreatePage handles GET /catalog/item/create.
func (s *Server) ItemCreatePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	suppliers, categories, err := s.itemChoices(r.Context())
	if err != nil {
		slog.Error("failed to load item form choices", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "item_form.html", &itemFormData{
		PageData:   PageData{Title: "Create Item", User: claims},
		Action:     "/catalog/item/create",
		Form:       url.Values{},
		Suppliers:  suppliers,
		Categories: categories,
	})
}

// ItemCreateSubmit handles POST /catalog/item/create. An attached image is
// uploaded first; if the upload fails, nothing is written and the form is
// shown again.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	if err := parseItemForm(r); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	title := "Create Item"
	action := "/catalog/item/create"

	in, errs := validate.Item(r.PostForm)
	if len(errs) > 0 {
		s.renderItemForm(w, r, title, action, errs, "")
		return
	}

	imageURL, err := s.uploadedImage(r)
	if err != nil {
		slog.Error("image upload failed", "error", err)
		s.renderItemForm(w, r, title, action, nil, "Image upload failed, the item was not saved. Please try again.")
		return
	}
	if imageURL != "" {
		in.ImageURL = imageURL
	}

	item, err := store.CreateItem(r.Context(), s.DB, itemFields(in))
	if errors.Is(err, store.ErrInvalidReference) {
		s.renderItemForm(w, r, title, action, s.referenceErrors(r.Context(), in), "")
		return
	}
	if err != nil {
		slog.Error("failed to create item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("item created", "user", claims.Username, "item", item.Name)
	http.Redirect(w, r, item.URL(), http.StatusSeeOther)
}

// ItemUpdatePage handles GET /catalog/item/{id}/update. The current image
// URL rides along as a hidden field so an update without a new upload keeps
// the existing photo.
func (s *Server) ItemUpdatePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	suppliers, categories, err := s.itemChoices(r.Context())
	if err != nil {
		slog.Error("failed to load item form choices", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	form := url.Values{
		"name":      {item.Name},
		"supplier":  {strconv.FormatInt(item.SupplierID, 10)},
		"quantity":  {strconv.FormatInt(item.Quantity, 10)},
		"price":     {strconv.FormatInt(item.Price, 10)},
		"image_url": {item.ImageURL},
	}
	if item.CategoryID != nil {
		form.Set("category", strconv.FormatInt(*item.CategoryID, 10))
	}

	s.Templates.Render(w, "item_form.html", &itemFormData{
		PageData:   PageData{Title: "Update Item", User: claims},
		Action:     fmt.Sprintf("/catalog/item/%d/update", id),
		Form:       form,
		Suppliers:  suppliers,
		Categories: categories,
	})
}

// ItemUpdateSubmit handles POST /catalog/item/{id}/update.
func (s *Server) ItemUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := parseItemForm(r); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	title := "Update Item"
	action := fmt.Sprintf("/catalog/item/%d/update", id)

	in, errs := validate.Item(r.PostForm)
	if len(errs) > 0 {
		s.renderItemForm(w, r, title, action, errs, "")
		return
	}

	imageURL, err := s.uploadedImage(r)
	if err != nil {
		slog.Error("image upload failed", "error", err)
		s.renderItemForm(w, r, title, action, nil, "Image upload failed, the item was not saved. Please try again.")
		return
	}
	if imageURL != "" {
		in.ImageURL = imageURL
	}

	err = store.UpdateItem(r.Context(), s.DB, id, itemFields(in))
	switch {
	case err == nil:
		slog.Info("item updated", "user", claims.Username, "item", in.Name)
		http.Redirect(w, r, fmt.Sprintf("/catalog/item/%d", id), http.StatusSeeOther)
	case errors.Is(err, store.ErrInvalidReference):
		s.renderItemForm(w, r, title, action, s.referenceErrors(r.Context(), in), "")
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "item not found", http.StatusNotFound)
	default:
		slog.Error("failed to update item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// ItemDeletePage handles GET /catalog/item/{id}/delete.
func (s *Server) ItemDeletePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Redirect(w, r, "/catalog/items", http.StatusSeeOther)
		return
	}

	s.Templates.Render(w, "item_delete.html", &struct {
		PageData
		Item *model.Item
	}{
		PageData: PageData{Title: "Delete Item", User: claims},
		Item:     item,
	})
}

// ItemDeleteSubmit handles POST /catalog/item/{id}/delete. Nothing
// references items, so deletion is unconditional.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := store.DeleteItem(r.Context(), s.DB, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Error("failed to delete item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("item deleted", "user", claims.Username, "id", id)
	http.Redirect(w, r, "/catalog/items", http.StatusSeeOther)
}

// parseItemForm parses an item form, which may be multipart when an image
// is attached or urlencoded when not.
func parseItemForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxUploadBytes)
	}
	return r.ParseForm()
}

// uploadedImage sends an attached image file to the uploader and returns its
// hosted URL. Returns "" when no file was attached.
func (s *Server) uploadedImage(r *http.Request) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading image field: %w", err)
	}
	defer file.Close()

	return s.Uploader.Upload(r.Context(), file, header.Filename)
}

// itemChoices loads the supplier and category selections for the item form.
func (s *Server) itemChoices(ctx context.Context) ([]model.Supplier, []model.Category, error) {
	var suppliers []model.Supplier
	var categories []model.Category
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		suppliers, err = store.ListSuppliers(ctx, s.DB)
		return err
	})
	g.Go(func() (err error) {
		categories, err = store.ListCategories(ctx, s.DB)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return suppliers, categories, nil
}

// referenceErrors pins a failed foreign key write to the field that caused
// it by checking which referenced record is missing.
func (s *Server) referenceErrors(ctx context.Context, in validate.ItemInput) validate.Errors {
	var errs validate.Errors
	if supplier, err := store.GetSupplier(ctx, s.DB, in.SupplierID); err == nil && supplier == nil {
		errs = append(errs, validate.FieldError{Field: "supplier", Message: "Supplier does not exist"})
	}
	if category, err := store.GetCategory(ctx, s.DB, in.CategoryID); err == nil && category == nil {
		errs = append(errs, validate.FieldError{Field: "category", Message: "Category does not exist"})
	}
	if len(errs) == 0 {
		errs = append(errs, validate.FieldError{Field: "supplier", Message: "Referenced record does not exist"})
	}
	return errs
}

// renderItemForm re-renders the item form with the submitted values.
func (s *Server) renderItemForm(w http.ResponseWriter, r *http.Request, title, action string, errs validate.Errors, pageErr string) {
	claims := GetWebClaims(r.Context())

	suppliers, categories, err := s.itemChoices(r.Context())
	if err != nil {
		slog.Error("failed to load item form choices", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "item_form.html", &itemFormData{
		PageData:   PageData{Title: title, User: claims, Error: pageErr},
		Action:     action,
		Form:       r.PostForm,
		Errors:     errs,
		Suppliers:  suppliers,
		Categories: categories,
	})
}

// itemFields converts validated form input into store fields.
func itemFields(in validate.ItemInput) store.ItemFields {
	return store.ItemFields{
		Name:       in.Name,
		SupplierID: in.SupplierID,
		Quantity:   in.Quantity,
		Price:      in.Price,
		CategoryID: &in.CategoryID,
		ImageURL:   in.ImageURL,
	}
}
