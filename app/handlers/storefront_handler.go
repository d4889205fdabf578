package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/graple254/bazaa/app/helpers"
	"github.com/graple254/bazaa/app/models"
	"github.com/graple254/bazaa/app/repositories"
	"github.com/unrolled/render"
)

const storefrontPerPage = 12

type StorefrontHandler struct {
	render       *render.Render
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	commentRepo  repositories.CommentRepositoryImpl
	likeRepo     repositories.LikeRepositoryImpl
	annRepo      repositories.AnnouncementRepositoryImpl
	validator    *validator.Validate
}

func NewStorefrontHandler(r *render.Render, productRepo repositories.ProductRepositoryImpl, categoryRepo repositories.CategoryRepositoryImpl, commentRepo repositories.CommentRepositoryImpl, likeRepo repositories.LikeRepositoryImpl, annRepo repositories.AnnouncementRepositoryImpl, validator *validator.Validate) *StorefrontHandler {
	return &StorefrontHandler{
		render:       r,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		commentRepo:  commentRepo,
		likeRepo:     likeRepo,
		annRepo:      annRepo,
		validator:    validator,
	}
}

type CommentForm struct {
	UserName string `form:"user_name" validate:"required,max=100"`
	Text     string `form:"text" validate:"required"`
}

// requireStore renders the storefront 404 page when the host resolved to
// no tenant. Unknown subdomains are a handled state, not a server error.
func (h *StorefrontHandler) requireStore(w http.ResponseWriter, r *http.Request) *models.Store {
	store := helpers.CurrentStore(r)
	if store == nil {
		data := helpers.GetBaseData(r, map[string]interface{}{"Title": "Store Not Found"})
		_ = h.render.HTML(w, http.StatusNotFound, "storefront/not_found", data)
		return nil
	}
	return store
}

func (h *StorefrontHandler) HomeGetHandler(w http.ResponseWriter, r *http.Request) {
	store := h.requireStore(w, r)
	if store == nil {
		return
	}

	categoryID := r.URL.Query().Get("category")
	page := helpers.PageParam(r, "page")

	products, total, err := h.productRepo.GetActiveByStorePaginated(r.Context(), store.ID, categoryID, storefrontPerPage, (page-1)*storefrontPerPage)
	if err != nil {
		log.Printf("Storefront HomeGetHandler: product list for store %s failed: %v", store.ID, err)
	}

	categories, err := h.categoryRepo.GetByStore(r.Context(), store.ID)
	if err != nil {
		log.Printf("Storefront HomeGetHandler: categories for store %s failed: %v", store.ID, err)
	}

	announcements, err := h.annRepo.GetActiveByStore(r.Context(), store.ID)
	if err != nil {
		log.Printf("Storefront HomeGetHandler: announcements for store %s failed: %v", store.ID, err)
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":          store.Name,
		"Store":          store,
		"Products":       products,
		"Categories":     categories,
		"Announcements":  announcements,
		"ActiveCategory": categoryID,
		"WhatsAppLink":   store.WhatsAppLink(""),
		"Page":           helpers.NewPagination(page, storefrontPerPage, total),
	})
	_ = h.render.HTML(w, http.StatusOK, "storefront/index", data)
}

func (h *StorefrontHandler) ProductDetailGetHandler(w http.ResponseWriter, r *http.Request) {
	store := h.requireStore(w, r)
	if store == nil {
		return
	}

	product, err := h.productRepo.FindActiveByIDForStore(r.Context(), mux.Vars(r)["id"], store.ID)
	if err != nil {
		log.Printf("Storefront ProductDetailGetHandler: lookup failed: %v", err)
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.NotFound(w, r)
		return
	}

	comments, err := h.commentRepo.GetByProduct(r.Context(), product.ID)
	if err != nil {
		log.Printf("Storefront ProductDetailGetHandler: comments for %s failed: %v", product.ID, err)
	}

	likes, err := h.likeRepo.CountByProduct(r.Context(), product.ID)
	if err != nil {
		log.Printf("Storefront ProductDetailGetHandler: like count for %s failed: %v", product.ID, err)
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":        product.Title,
		"Store":        store,
		"Product":      product,
		"Comments":     comments,
		"LikeCount":    likes,
		"WhatsAppLink": store.WhatsAppLink(product.Title),
	})
	_ = h.render.HTML(w, http.StatusOK, "storefront/product_detail", data)
}

func (h *StorefrontHandler) LikePostHandler(w http.ResponseWriter, r *http.Request) {
	store := helpers.CurrentStore(r)
	if store == nil {
		http.NotFound(w, r)
		return
	}

	product, err := h.productRepo.FindActiveByIDForStore(r.Context(), mux.Vars(r)["id"], store.ID)
	if err != nil {
		log.Printf("Storefront LikePostHandler: lookup failed: %v", err)
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.NotFound(w, r)
		return
	}

	// Repeat likes from the same IP are a silent no-op.
	if err := h.likeRepo.Create(r.Context(), product.ID, helpers.ClientIP(r)); err != nil && err != repositories.ErrDuplicate {
		log.Printf("Storefront LikePostHandler: like for %s failed: %v", product.ID, err)
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}

	count, err := h.likeRepo.CountByProduct(r.Context(), product.ID)
	if err != nil {
		log.Printf("Storefront LikePostHandler: like count for %s failed: %v", product.ID, err)
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"likes": count})
}

func (h *StorefrontHandler) CommentPostHandler(w http.ResponseWriter, r *http.Request) {
	store := helpers.CurrentStore(r)
	if store == nil {
		http.NotFound(w, r)
		return
	}

	product, err := h.productRepo.FindActiveByIDForStore(r.Context(), mux.Vars(r)["id"], store.ID)
	if err != nil {
		log.Printf("Storefront CommentPostHandler: lookup failed: %v", err)
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/product/"+product.ID+"?status=error&message="+url.QueryEscape("Something went wrong processing the form."), http.StatusSeeOther)
		return
	}

	form := CommentForm{
		UserName: r.PostFormValue("user_name"),
		Text:     r.PostFormValue("text"),
	}

	if err := h.validator.Struct(&form); err != nil {
		http.Redirect(w, r, "/product/"+product.ID+"?status=error&message="+url.QueryEscape("Name and comment are both required."), http.StatusSeeOther)
		return
	}

	comment := &models.Comment{
		ProductID: product.ID,
		UserName:  form.UserName,
		Text:      form.Text,
	}
	if err := h.commentRepo.Create(r.Context(), comment); err != nil {
		log.Printf("Storefront CommentPostHandler: comment for %s failed: %v", product.ID, err)
		http.Redirect(w, r, "/product/"+product.ID+"?status=error&message="+url.QueryEscape("Could not post your comment."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/product/"+product.ID+"?status=success&message="+url.QueryEscape("Comment posted."), http.StatusSeeOther)
}
