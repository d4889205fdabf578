package handlers

import (
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/graple254/bazaa/app/helpers"
	"github.com/graple254/bazaa/app/models"
	"github.com/graple254/bazaa/app/repositories"
	"github.com/graple254/bazaa/app/services"
	"github.com/graple254/bazaa/app/utils/calc"
	"github.com/unrolled/render"
)

const productsPerPage = 7

type ProductManagementHandler struct {
	render       *render.Render
	storeRepo    repositories.StoreRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	imageRepo    repositories.ImageRepositoryImpl
	pipeline     *services.ImagePipeline
	validator    *validator.Validate
}

func NewProductManagementHandler(r *render.Render, storeRepo repositories.StoreRepositoryImpl, productRepo repositories.ProductRepositoryImpl, categoryRepo repositories.CategoryRepositoryImpl, imageRepo repositories.ImageRepositoryImpl, pipeline *services.ImagePipeline, validator *validator.Validate) *ProductManagementHandler {
	return &ProductManagementHandler{
		render:       r,
		storeRepo:    storeRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		imageRepo:    imageRepo,
		pipeline:     pipeline,
		validator:    validator,
	}
}

type ProductForm struct {
	Title          string `form:"title" validate:"required,max=150"`
	Caption        string `form:"caption"`
	Price          string `form:"price"`
	WasPrice       string `form:"was_price"`
	AvailableStock string `form:"available_stock" validate:"omitempty,numeric"`
}

func (h *ProductManagementHandler) storeForUser(r *http.Request) (*models.Store, error) {
	user := helpers.CurrentUser(r)
	if user == nil {
		return nil, nil
	}
	return h.storeRepo.FindByOwnerID(r.Context(), user.ID)
}

func (h *ProductManagementHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	store, err := h.storeForUser(r)
	if err != nil {
		log.Printf("ProductManagement GetHandler: store lookup failed: %v", err)
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}
	if store == nil {
		http.Redirect(w, r, "/create-store-profile?status=info&message="+url.QueryEscape("Please create your store profile first."), http.StatusSeeOther)
		return
	}

	page := helpers.PageParam(r, "page")
	products, total, err := h.productRepo.GetByStorePaginated(r.Context(), store.ID, productsPerPage, (page-1)*productsPerPage)
	if err != nil {
		log.Printf("ProductManagement GetHandler: product list failed: %v", err)
	}

	stats, err := h.productRepo.Stats(r.Context(), store.ID)
	if err != nil {
		log.Printf("ProductManagement GetHandler: stats failed: %v", err)
	}

	categories, err := h.categoryRepo.GetByStore(r.Context(), store.ID)
	if err != nil {
		log.Printf("ProductManagement GetHandler: categories failed: %v", err)
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":      "Product Management",
		"Store":      store,
		"Products":   products,
		"Stats":      stats,
		"Categories": categories,
		"Page":       helpers.NewPagination(page, productsPerPage, total),
	})
	_ = h.render.HTML(w, http.StatusOK, "dashboard/product_management", data)
}

func (h *ProductManagementHandler) PostHandler(w http.ResponseWriter, r *http.Request) {
	store, err := h.storeForUser(r)
	if err != nil || store == nil {
		http.Redirect(w, r, "/create-store-profile", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil && err != http.ErrNotMultipart {
		log.Printf("ProductManagement PostHandler: Error parsing form: %v", err)
		http.Redirect(w, r, "/product-management?status=error&message="+url.QueryEscape("Something went wrong processing the form."), http.StatusSeeOther)
		return
	}

	switch r.PostFormValue("action") {
	case "create_categories":
		h.createCategories(w, r, store)
	case "create":
		h.createProduct(w, r, store)
	case "edit":
		h.editProduct(w, r, store)
	case "delete":
		h.deleteProduct(w, r, store)
	default:
		http.Redirect(w, r, "/product-management?status=error&message="+url.QueryEscape("Unknown action."), http.StatusSeeOther)
	}
}

func (h *ProductManagementHandler) createCategories(w http.ResponseWriter, r *http.Request, store *models.Store) {
	created := 0
	for _, raw := range strings.Split(r.PostFormValue("names"), ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, isNew, err := h.categoryRepo.GetOrCreate(r.Context(), store.ID, name); err != nil {
			log.Printf("createCategories: failed for %q: %v", name, err)
		} else if isNew {
			created++
		}
	}

	http.Redirect(w, r, "/product-management?status=success&message="+url.QueryEscape("Created "+strconv.Itoa(created)+" categories."), http.StatusSeeOther)
}

func (h *ProductManagementHandler) createProduct(w http.ResponseWriter, r *http.Request, store *models.Store) {
	form := ProductForm{
		Title:          r.PostFormValue("title"),
		Caption:        r.PostFormValue("caption"),
		Price:          r.PostFormValue("price"),
		WasPrice:       r.PostFormValue("was_price"),
		AvailableStock: r.PostFormValue("available_stock"),
	}

	if err := h.validator.Struct(&form); err != nil {
		http.Redirect(w, r, "/product-management?status=error&message="+url.QueryEscape("Please check the product fields and try again."), http.StatusSeeOther)
		return
	}

	stock, _ := strconv.Atoi(form.AvailableStock)
	price := calc.ParsePrice(form.Price)
	wasPrice := calc.ParsePrice(form.WasPrice)

	product := &models.Product{
		StoreID:         store.ID,
		Title:           form.Title,
		Caption:         form.Caption,
		Price:           price,
		WasPrice:        wasPrice,
		AvailableStock:  stock,
		IsActive:        true,
		PercentDiscount: calc.ComputeDiscount(wasPrice, price),
	}

	if err := h.productRepo.Create(r.Context(), product); err != nil {
		log.Printf("createProduct: create failed for store %s: %v", store.ID, err)
		http.Redirect(w, r, "/product-management?status=error&message="+url.QueryEscape("Could not create the product."), http.StatusSeeOther)
		return
	}

	if err := h.assignCategories(r, store, product); err != nil {
		log.Printf("createProduct: category assignment failed for %s: %v", product.ID, err)
	}

	if msg := h.attachUploadedImages(r, product); msg != "" {
		http.Redirect(w, r, "/product-management?status=error&message="+url.QueryEscape(msg), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/product-management?status=success&message="+url.QueryEscape("Product created successfully."), http.StatusSeeOther)
}

func (h *ProductManagementHandler) editProduct(w http.ResponseWriter, r *http.Request, store *models.Store) {
	product, err := h.productRepo.FindByIDForStore(r.Context(), r.PostFormValue("product_id"), store.ID)
	if err != nil {
		log.Printf("editProduct: lookup failed: %v", err)
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.NotFound(w, r)
		return
	}

	form := ProductForm{
		Title:          r.PostFormValue("title"),
		Caption:        r.PostFormValue("caption"),
		Price:          r.PostFormValue("price"),
		WasPrice:       r.PostFormValue("was_price"),
		AvailableStock: r.PostFormValue("available_stock"),
	}

	if err := h.validator.Struct(&form); err != nil {
		http.Redirect(w, r, "/product-management?status=error&message="+url.QueryEscape("Please check the product fields and try again."), http.StatusSeeOther)
		return
	}

	stock, _ := strconv.Atoi(form.AvailableStock)
	price := calc.ParsePrice(form.Price)
	wasPrice := calc.ParsePrice(form.WasPrice)

	product.Title = form.Title
	product.Caption = form.Caption
	product.Price = price
	product.WasPrice = wasPrice
	product.AvailableStock = stock
	product.IsActive = r.PostFormValue("is_active") == "on"
	product.PercentDiscount = calc.ComputeDiscount(wasPrice, price)

	if err := h.productRepo.Update(r.Context(), product); err != nil {
		log.Printf("editProduct: update failed for %s: %v", product.ID, err)
		http.Redirect(w, r, "/product-management?status=error&message="+url.QueryEscape("Could not update the product."), http.StatusSeeOther)
		return
	}

	if err := h.assignCategories(r, store, product); err != nil {
		log.Printf("editProduct: category assignment failed for %s: %v", product.ID, err)
	}

	if ids := r.PostForm["delete_images"]; len(ids) > 0 {
		images, err := h.imageRepo.FindByIDsForProduct(r.Context(), product.ID, ids)
		if err != nil {
			log.Printf("editProduct: image lookup failed for %s: %v", product.ID, err)
		}
		for i := range images {
			h.pipeline.Remove(&images[i])
			if err := h.imageRepo.Delete(r.Context(), &images[i]); err != nil {
				log.Printf("editProduct: image delete failed for %s: %v", images[i].ID, err)
			}
		}
	}

	if msg := h.attachUploadedImages(r, product); msg != "" {
		http.Redirect(w, r, "/product-management?status=error&message="+url.QueryEscape(msg), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/product-management?status=success&message="+url.QueryEscape("Product updated successfully."), http.StatusSeeOther)
}

func (h *ProductManagementHandler) deleteProduct(w http.ResponseWriter, r *http.Request, store *models.Store) {
	product, err := h.productRepo.FindByIDForStore(r.Context(), r.PostFormValue("product_id"), store.ID)
	if err != nil {
		log.Printf("deleteProduct: lookup failed: %v", err)
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.NotFound(w, r)
		return
	}

	for i := range product.Images {
		h.pipeline.Remove(&product.Images[i])
	}

	if err := h.productRepo.Delete(r.Context(), product); err != nil {
		log.Printf("deleteProduct: delete failed for %s: %v", product.ID, err)
		http.Redirect(w, r, "/product-management?status=error&message="+url.QueryEscape("Could not delete the product."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/product-management?status=success&message="+url.QueryEscape("Product deleted."), http.StatusSeeOther)
}

func (h *ProductManagementHandler) assignCategories(r *http.Request, store *models.Store, product *models.Product) error {
	ids := r.PostForm["categories"]
	categories, err := h.categoryRepo.FindByIDsForStore(r.Context(), store.ID, ids)
	if err != nil {
		return err
	}
	return h.productRepo.SetCategories(r.Context(), product, categories)
}

// attachUploadedImages stores each uploaded file and runs it through the
// derivation pipeline. A corrupt upload rejects that file entirely: the
// stored original is removed again and no image row is written.
func (h *ProductManagementHandler) attachUploadedImages(r *http.Request, product *models.Product) string {
	if r.MultipartForm == nil {
		return ""
	}

	for _, header := range r.MultipartForm.File["images"] {
		if msg := h.attachImage(r, product, header); msg != "" {
			return msg
		}
	}
	return ""
}

func (h *ProductManagementHandler) attachImage(r *http.Request, product *models.Product, header *multipart.FileHeader) string {
	file, err := header.Open()
	if err != nil {
		log.Printf("attachImage: open upload %s failed: %v", header.Filename, err)
		return "Could not read the uploaded image."
	}
	defer file.Close()

	rel, err := h.pipeline.SaveOriginal("store_products", header.Filename, file)
	if err != nil {
		log.Printf("attachImage: save upload %s failed: %v", header.Filename, err)
		return "Could not save the uploaded image."
	}

	image := &models.ProductImage{
		ProductID:    product.ID,
		OriginalPath: rel,
	}

	if err := h.pipeline.Apply(image, ""); err != nil {
		log.Printf("attachImage: derivation for %s failed: %v", header.Filename, err)
		h.pipeline.Remove(image)
		return "The uploaded file is not a supported image."
	}

	if err := h.imageRepo.Create(r.Context(), image); err != nil {
		log.Printf("attachImage: image row for %s failed: %v", header.Filename, err)
		h.pipeline.Remove(image)
		return "Could not save the uploaded image."
	}

	return ""
}
