package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/giygas/medreminder/entities"
)

type categorySummary struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

type medicineCard struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// CategoryTitle turns "blood-pressure" into "Blood Pressure Medicines".
func CategoryTitle(slug string) string {
	// Casers keep state, so each call gets its own
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " ")) + " Medicines"
}

// ServeCategories lists the catalog categories
func (h *HTTPHandlerImpl) ServeCategories(w http.ResponseWriter, r *http.Request) {
	ds := h.dataStore.GetDataset()

	out := make([]categorySummary, 0, len(ds.Categories))
	for _, c := range ds.Categories {
		out = append(out, categorySummary{
			Slug:  c.Slug,
			Title: CategoryTitle(c.Slug),
			Count: len(c.Medicines),
		})
	}

	h.RespondWithJSON(w, http.StatusOK, out)
}

// ServeCategory returns the medicine cards of one category
func (h *HTTPHandlerImpl) ServeCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := h.lookupCategory(w, r)
	if !ok {
		return
	}

	cards := make([]medicineCard, 0, len(category.Medicines))
	for _, m := range category.Medicines {
		cards = append(cards, medicineCard{Name: m.Name, Image: m.Image})
	}

	h.RespondWithJSON(w, http.StatusOK, map[string]any{
		"slug":      category.Slug,
		"title":     CategoryTitle(category.Slug),
		"medicines": cards,
	})
}

// ServeCategoryMedicine returns one medicine's details, matching the name
// case-insensitively
func (h *HTTPHandlerImpl) ServeCategoryMedicine(w http.ResponseWriter, r *http.Request) {
	category, ok := h.lookupCategory(w, r)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	if err := h.validator.ValidateInput(name); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	fold := cases.Fold()
	folded := fold.String(strings.TrimSpace(name))
	for _, m := range category.Medicines {
		if fold.String(m.Name) == folded {
			h.RespondWithJSON(w, http.StatusOK, m)
			return
		}
	}

	h.RespondWithError(w, http.StatusNotFound, "Medicine not found")
}

func (h *HTTPHandlerImpl) lookupCategory(w http.ResponseWriter, r *http.Request) (entities.Category, bool) {
	slug := strings.ToLower(chi.URLParam(r, "category"))

	if err := h.validator.ValidateInput(slug); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return entities.Category{}, false
	}

	category, ok := h.dataStore.GetDataset().CategoryFor(slug)
	if !ok {
		h.RespondWithError(w, http.StatusNotFound, "Category not found")
		return entities.Category{}, false
	}
	return category, true
}
