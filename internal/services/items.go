// internal/services/items.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/javajoker/popgo-backend/internal/errs"
	"github.com/javajoker/popgo-backend/internal/models"
	"github.com/javajoker/popgo-backend/internal/pipeline"
	"github.com/javajoker/popgo-backend/internal/prefs"
	"github.com/javajoker/popgo-backend/internal/utils"
)

// ItemView is the wire shape of a pipeline item. Absent optional fields are
// omitted rather than sent as zero values.
type ItemView struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Number        string   `json:"number"`
	Category      string   `json:"category"`
	Series        []string `json:"series"`
	Exclusive     bool     `json:"exclusive"`
	ImageName     *string  `json:"imageName,omitempty"`
	Condition     *string  `json:"condition,omitempty"`
	PurchasePrice *float64 `json:"purchase_price,omitempty"`
	PurchaseDate  *string  `json:"purchase_date,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

func NewItemView(it pipeline.Item) ItemView {
	v := ItemView{
		ID:            it.ID,
		Title:         it.Title,
		Number:        it.Number,
		Category:      it.Category,
		Series:        it.Series,
		Exclusive:     it.Exclusive,
		ImageName:     it.ImageName.Ptr(),
		PurchasePrice: it.PurchasePrice.Ptr(),
		Notes:         it.Notes.Ptr(),
	}
	if v.Series == nil {
		v.Series = []string{}
	}
	if cond, ok := it.Condition.Get(); ok {
		s := string(cond)
		v.Condition = &s
	}
	if date, ok := it.PurchaseDate.Get(); ok {
		s := date.Format(models.DateLayout)
		v.PurchaseDate = &s
	}
	return v
}

func NewItemViews(items []pipeline.Item) []ItemView {
	return lo.Map(items, func(it pipeline.Item, _ int) ItemView { return NewItemView(it) })
}

// ListResult is one processed page ready for the response envelope.
type ListResult struct {
	Items  []ItemView
	Result pipeline.Result
}

// runList processes source with the caller's parameters; the caller's
// language picks the title collation.
func runList(source []pipeline.Item, q utils.ListParams) *ListResult {
	view := pipeline.NewView(source,
		pipeline.WithSorter(sorterFor(q.Lang)),
		pipeline.WithFilter(q.Filter),
		pipeline.WithSort(q.Sort),
		pipeline.WithPage(q.Page),
	)
	res := view.Result()
	return &ListResult{Items: NewItemViews(res.Items), Result: res}
}

func sorterFor(lang string) *pipeline.Sorter {
	l, ok := prefs.ParseLanguage(lang)
	if !ok {
		l = prefs.DefaultLanguage
	}
	return pipeline.NewSorter(l.Tag())
}

// notFound maps gorm's missing-row error to errs.ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, errs.ErrNotFound)
	}
	return fmt.Errorf("database error: %w", err)
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func roundedPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := pipeline.Round2(*v)
	return &r
}
