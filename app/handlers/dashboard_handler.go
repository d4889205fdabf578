package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/graple254/bazaa/app/helpers"
	"github.com/graple254/bazaa/app/models"
	"github.com/graple254/bazaa/app/repositories"
	"github.com/graple254/bazaa/app/services"
	"github.com/graple254/bazaa/app/utils/tenant"
	"github.com/unrolled/render"
)

const announcementsPerPage = 3

type DashboardHandler struct {
	render       *render.Render
	storeRepo    repositories.StoreRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	annRepo      repositories.AnnouncementRepositoryImpl
	pipeline     *services.ImagePipeline
	resolver     *tenant.Resolver
	validator    *validator.Validate
}

func NewDashboardHandler(r *render.Render, storeRepo repositories.StoreRepositoryImpl, productRepo repositories.ProductRepositoryImpl, categoryRepo repositories.CategoryRepositoryImpl, annRepo repositories.AnnouncementRepositoryImpl, pipeline *services.ImagePipeline, resolver *tenant.Resolver, validator *validator.Validate) *DashboardHandler {
	return &DashboardHandler{
		render:       r,
		storeRepo:    storeRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		annRepo:      annRepo,
		pipeline:     pipeline,
		resolver:     resolver,
		validator:    validator,
	}
}

type StoreForm struct {
	Name           string `form:"name" validate:"required,max=100"`
	Subdomain      string `form:"subdomain" validate:"required,max=50,hostname_rfc1123"`
	Description    string `form:"description"`
	WhatsappNumber string `form:"whatsapp_number" validate:"required,max=20"`
}

func (h *DashboardHandler) storeForUser(r *http.Request) (*models.Store, error) {
	user := helpers.CurrentUser(r)
	if user == nil {
		return nil, nil
	}
	return h.storeRepo.FindByOwnerID(r.Context(), user.ID)
}

func (h *DashboardHandler) DashboardGetHandler(w http.ResponseWriter, r *http.Request) {
	store, err := h.storeForUser(r)
	if err != nil {
		log.Printf("DashboardGetHandler: store lookup failed: %v", err)
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}
	if store == nil {
		http.Redirect(w, r, "/create-store-profile?status=info&message="+url.QueryEscape("Please create your store profile first."), http.StatusSeeOther)
		return
	}

	stats, err := h.productRepo.Stats(r.Context(), store.ID)
	if err != nil {
		log.Printf("DashboardGetHandler: product stats failed: %v", err)
	}

	recent, err := h.productRepo.GetRecentByStore(r.Context(), store.ID, 3)
	if err != nil {
		log.Printf("DashboardGetHandler: recent products failed: %v", err)
	}

	categories, err := h.categoryRepo.GetByStore(r.Context(), store.ID)
	if err != nil {
		log.Printf("DashboardGetHandler: categories failed: %v", err)
	}

	annPage := helpers.PageParam(r, "announcement_page")
	announcements, annTotal, err := h.annRepo.GetByStorePaginated(r.Context(), store.ID, announcementsPerPage, (annPage-1)*announcementsPerPage)
	if err != nil {
		log.Printf("DashboardGetHandler: announcements failed: %v", err)
	}

	annStats, err := h.annRepo.Stats(r.Context(), store.ID)
	if err != nil {
		log.Printf("DashboardGetHandler: announcement stats failed: %v", err)
	}

	globalAnnouncements, err := h.annRepo.GetActiveGlobal(r.Context())
	if err != nil {
		log.Printf("DashboardGetHandler: global announcements failed: %v", err)
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":               "Dashboard",
		"Store":               store,
		"ProductStats":        stats,
		"RecentProducts":      recent,
		"Categories":          categories,
		"CategoryCount":       len(categories),
		"Announcements":       announcements,
		"AnnouncementStats":   annStats,
		"AnnouncementsPage":   helpers.NewPagination(annPage, announcementsPerPage, annTotal),
		"GlobalAnnouncements": globalAnnouncements,
	})
	_ = h.render.HTML(w, http.StatusOK, "dashboard/index", data)
}

func (h *DashboardHandler) DashboardPostHandler(w http.ResponseWriter, r *http.Request) {
	store, err := h.storeForUser(r)
	if err != nil || store == nil {
		http.Redirect(w, r, "/create-store-profile", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil && err != http.ErrNotMultipart {
		log.Printf("DashboardPostHandler: Error parsing form: %v", err)
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Something went wrong processing the form."), http.StatusSeeOther)
		return
	}

	switch r.PostFormValue("action") {
	case "create_store_announcement":
		h.createAnnouncement(w, r, store)
	case "edit_store_announcement":
		h.editAnnouncement(w, r, store)
	case "toggle_status":
		h.toggleAnnouncement(w, r, store)
	case "update_store":
		h.updateStore(w, r, store)
	default:
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Unknown action."), http.StatusSeeOther)
	}
}

func (h *DashboardHandler) createAnnouncement(w http.ResponseWriter, r *http.Request, store *models.Store) {
	title := r.PostFormValue("title")
	message := r.PostFormValue("message")
	if title == "" || message == "" {
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Both fields are required."), http.StatusSeeOther)
		return
	}

	ann := &models.StoreAnnouncement{
		StoreID:  store.ID,
		Title:    title,
		Message:  message,
		IsActive: r.PostFormValue("is_active") == "on",
	}
	if err := h.annRepo.Create(r.Context(), ann); err != nil {
		log.Printf("createAnnouncement: failed for store %s: %v", store.ID, err)
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Could not create the announcement."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/dashboard?status=success&message="+url.QueryEscape("Announcement created."), http.StatusSeeOther)
}

func (h *DashboardHandler) editAnnouncement(w http.ResponseWriter, r *http.Request, store *models.Store) {
	ann, err := h.annRepo.FindByIDForStore(r.Context(), r.PostFormValue("announcement_id"), store.ID)
	if err != nil {
		log.Printf("editAnnouncement: lookup failed: %v", err)
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}
	if ann == nil {
		http.NotFound(w, r)
		return
	}

	ann.Title = r.PostFormValue("title")
	ann.Message = r.PostFormValue("message")
	ann.IsActive = r.PostFormValue("is_active") == "on"

	if err := h.annRepo.Update(r.Context(), ann); err != nil {
		log.Printf("editAnnouncement: update failed for %s: %v", ann.ID, err)
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Could not update the announcement."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/dashboard?status=success&message="+url.QueryEscape("Announcement updated."), http.StatusSeeOther)
}

func (h *DashboardHandler) toggleAnnouncement(w http.ResponseWriter, r *http.Request, store *models.Store) {
	ann, err := h.annRepo.FindByIDForStore(r.Context(), r.PostFormValue("announcement_id"), store.ID)
	if err != nil {
		log.Printf("toggleAnnouncement: lookup failed: %v", err)
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}
	if ann == nil {
		http.NotFound(w, r)
		return
	}

	ann.IsActive = !ann.IsActive
	if err := h.annRepo.Update(r.Context(), ann); err != nil {
		log.Printf("toggleAnnouncement: update failed for %s: %v", ann.ID, err)
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Could not update the status."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/dashboard?status=success&message="+url.QueryEscape("Status updated."), http.StatusSeeOther)
}

func (h *DashboardHandler) updateStore(w http.ResponseWriter, r *http.Request, store *models.Store) {
	form := StoreForm{
		Name:           r.PostFormValue("name"),
		Subdomain:      r.PostFormValue("subdomain"),
		Description:    r.PostFormValue("description"),
		WhatsappNumber: r.PostFormValue("whatsapp_number"),
	}

	if err := h.validator.Struct(&form); err != nil {
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Please check the store fields and try again."), http.StatusSeeOther)
		return
	}

	oldSubdomain := store.Subdomain
	if form.Subdomain != store.Subdomain {
		taken, err := h.storeRepo.SubdomainTaken(r.Context(), form.Subdomain, store.ID)
		if err != nil {
			log.Printf("updateStore: subdomain check failed: %v", err)
			http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Something went wrong. Please try again."), http.StatusSeeOther)
			return
		}
		if taken {
			http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Subdomain already in use."), http.StatusSeeOther)
			return
		}
	}

	store.Name = form.Name
	store.Description = form.Description
	store.WhatsappNumber = form.WhatsappNumber
	store.Subdomain = form.Subdomain

	if file, header, err := r.FormFile("logo"); err == nil {
		defer file.Close()
		rel, saveErr := h.pipeline.SaveOriginal("store_logos", header.Filename, file)
		if saveErr != nil {
			log.Printf("updateStore: logo upload failed: %v", saveErr)
			http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Could not save the logo."), http.StatusSeeOther)
			return
		}
		store.LogoPath = rel
	}

	if err := h.storeRepo.Update(r.Context(), store); err != nil {
		if err == repositories.ErrDuplicate {
			http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Subdomain already in use."), http.StatusSeeOther)
			return
		}
		log.Printf("updateStore: update failed for store %s: %v", store.ID, err)
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Could not update the store."), http.StatusSeeOther)
		return
	}

	// Let the host cache settle before the TTL does.
	h.resolver.Forget(oldSubdomain)
	h.resolver.Forget(store.Subdomain)

	http.Redirect(w, r, "/dashboard?status=success&message="+url.QueryEscape("Store updated."), http.StatusSeeOther)
}

func (h *DashboardHandler) CreateStoreProfileGetHandler(w http.ResponseWriter, r *http.Request) {
	store, err := h.storeForUser(r)
	if err != nil {
		log.Printf("CreateStoreProfileGetHandler: store lookup failed: %v", err)
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}
	if store != nil {
		http.Redirect(w, r, "/dashboard?status=warning&message="+url.QueryEscape("You already have a store profile."), http.StatusSeeOther)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{"Title": "Create Store Profile"})
	_ = h.render.HTML(w, http.StatusOK, "dashboard/create_store_profile", data)
}

func (h *DashboardHandler) CreateStoreProfilePostHandler(w http.ResponseWriter, r *http.Request) {
	existing, err := h.storeForUser(r)
	if err != nil {
		log.Printf("CreateStoreProfilePostHandler: store lookup failed: %v", err)
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Redirect(w, r, "/dashboard?status=warning&message="+url.QueryEscape("You already have a store profile."), http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Printf("CreateStoreProfilePostHandler: Error parsing form: %v", err)
		h.renderCreateStoreError(w, r, "Something went wrong processing the form.")
		return
	}

	form := StoreForm{
		Name:           r.PostFormValue("name"),
		Subdomain:      r.PostFormValue("subdomain"),
		Description:    r.PostFormValue("description"),
		WhatsappNumber: r.PostFormValue("whatsapp_number"),
	}

	file, header, fileErr := r.FormFile("logo")
	if err := h.validator.Struct(&form); err != nil || fileErr != nil {
		h.renderCreateStoreError(w, r, "All fields are required.")
		return
	}
	defer file.Close()

	logoPath, err := h.pipeline.SaveOriginal("store_logos", header.Filename, file)
	if err != nil {
		log.Printf("CreateStoreProfilePostHandler: logo upload failed: %v", err)
		h.renderCreateStoreError(w, r, "Could not save the logo.")
		return
	}

	user := helpers.CurrentUser(r)
	store := &models.Store{
		OwnerID:        user.ID,
		Name:           form.Name,
		Subdomain:      form.Subdomain,
		Description:    form.Description,
		WhatsappNumber: form.WhatsappNumber,
		LogoPath:       logoPath,
	}

	if err := h.storeRepo.Create(r.Context(), store); err != nil {
		if err == repositories.ErrDuplicate {
			h.renderCreateStoreError(w, r, "Subdomain already taken. Choose another one.")
			return
		}
		log.Printf("CreateStoreProfilePostHandler: create failed for owner %s: %v", user.ID, err)
		h.renderCreateStoreError(w, r, "Could not create the store. Please try again.")
		return
	}

	http.Redirect(w, r, "/dashboard?status=success&message="+url.QueryEscape("Store profile created successfully!"), http.StatusSeeOther)
}

func (h *DashboardHandler) renderCreateStoreError(w http.ResponseWriter, r *http.Request, message string) {
	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":         "Create Store Profile",
		"Message":       message,
		"MessageStatus": "error",
	})
	_ = h.render.HTML(w, http.StatusOK, "dashboard/create_store_profile", data)
}
