package service

import (
	"time"

	"inputdash/internal/core/filters"
	"inputdash/internal/core/vocab"
	perr "inputdash/internal/platform/errors"
	tim "inputdash/internal/platform/time"
	"inputdash/internal/services/api/search/domain"
)

// AllVersions is the version choice that disables the version filter
const AllVersions = "--"

// Settings are the dashboard defaults applied to every request
type Settings struct {
	PerPage        int
	DefaultVersion string
}

// Form is a SearchInput after defaults, date handling and paging have been applied
type Form struct {
	Query        string
	Product      vocab.Product
	Version      string
	Type         *vocab.OpinionType
	Locale       string
	Platform     string
	Manufacturer string
	Device       string
	DateStart    *time.Time
	DateEnd      *time.Time
	Page         int
	PerPage      int
	Offset       int

	// Dashboard is set when the request carried no criteria at all
	Dashboard bool
}

// Normalize applies form defaults to in. today is the current calendar day in the dashboard zone.
func Normalize(in domain.SearchInput, s Settings, today time.Time) (Form, error) {
	f := Form{
		Query:        in.Q,
		Locale:       in.Locale,
		Platform:     in.Platform,
		Manufacturer: in.Manufacturer,
		Device:       in.Device,
		Page:         in.Page,
		PerPage:      max(s.PerPage, 1),
		Dashboard:    in == domain.SearchInput{},
	}

	f.Product = vocab.Firefox
	if in.Product != "" {
		p, ok := vocab.ProductByShort(in.Product)
		if !ok {
			return Form{}, perr.WithField(perr.InvalidArgf("unknown product %q", in.Product), "product")
		}
		f.Product = p
	}

	switch in.Version {
	case "":
		f.Version = s.DefaultVersion
	case AllVersions:
		f.Version = ""
	default:
		f.Version = in.Version
	}

	if in.Sentiment != "" {
		t, ok := vocab.TypeBySentiment(in.Sentiment)
		if !ok {
			return Form{}, perr.WithField(perr.InvalidArgf("unknown sentiment %q", in.Sentiment), "sentiment")
		}
		f.Type = &t
	}

	var err error
	if f.DateStart, err = parseDay(in.DateStart, "date_start", today.Location()); err != nil {
		return Form{}, err
	}
	if f.DateEnd, err = parseDay(in.DateEnd, "date_end", today.Location()); err != nil {
		return Form{}, err
	}
	if f.DateStart != nil && f.DateEnd == nil {
		f.DateEnd = tim.Ptr(today)
	}
	if f.DateStart != nil && f.DateEnd != nil && f.DateStart.After(*f.DateEnd) {
		f.DateStart, f.DateEnd = f.DateEnd, f.DateStart
	}

	if f.Page < 1 {
		f.Page = 1
	}
	f.Offset = (f.Page - 1) * f.PerPage
	return f, nil
}

func parseDay(s, field string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := tim.ParseDate(s, loc)
	if err != nil {
		return nil, perr.WithField(perr.Wrap(err, perr.ErrorCodeValidation, "invalid date"), field)
	}
	return &d, nil
}

// Options is the filter options the form selects
func (f Form) Options() filters.Options {
	o := filters.Options{
		Version:      f.Version,
		Platform:     f.Platform,
		Manufacturer: f.Manufacturer,
		Device:       f.Device,
		Locale:       f.Locale,
		DateStart:    f.DateStart,
		DateEnd:      f.DateEnd,
	}
	product := f.Product.ID
	o.Product = &product
	if f.Type != nil {
		typ := f.Type.ID
		o.Type = &typ
	}
	return o
}
