// internal/render/seo.go
//
// Structured-data (JSON-LD) graph composition.
//
// Context
// -------
// Each block is built from typed structs and marshalled with
// encoding/json, so field order is fixed by declaration and the output is
// byte-stable.  Go's JSON encoder escapes <, >, and & by default, which
// makes the documents safe to inline inside <script> tags without further
// treatment.
//
// Blocks emitted per page: Organization, the mapped local-business type,
// BreadcrumbList, one Service per offered service, plus ImageGallery and
// VideoObject when the underlying data exists.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package render

import (
	"encoding/json"

	"github.com/yanizio/vitrine/internal/business"
)

const schemaContext = "https://schema.org"

type postalAddress struct {
	Type          string `json:"@type"`
	StreetAddress string `json:"streetAddress"`
}

type geoCoordinates struct {
	Type      string `json:"@type"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type organizationSchema struct {
	Context string   `json:"@context"`
	Type    string   `json:"@type"`
	Name    string   `json:"name"`
	URL     string   `json:"url,omitempty"`
	Logo    string   `json:"logo,omitempty"`
	Email   string   `json:"email,omitempty"`
	Phone   string   `json:"telephone,omitempty"`
	SameAs  []string `json:"sameAs,omitempty"`
}

type openingSpec struct {
	Type      string `json:"@type"`
	DayOfWeek string `json:"dayOfWeek"`
	Opens     string `json:"opens"`
	Closes    string `json:"closes"`
}

type localBusinessSchema struct {
	Context     string          `json:"@context"`
	Type        string          `json:"@type"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	URL         string          `json:"url,omitempty"`
	Image       string          `json:"image,omitempty"`
	Phone       string          `json:"telephone,omitempty"`
	Email       string          `json:"email,omitempty"`
	Address     *postalAddress  `json:"address,omitempty"`
	Geo         *geoCoordinates `json:"geo,omitempty"`
	Hours       []openingSpec   `json:"openingHoursSpecification,omitempty"`
}

type breadcrumbItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

type breadcrumbSchema struct {
	Context string           `json:"@context"`
	Type    string           `json:"@type"`
	Items   []breadcrumbItem `json:"itemListElement"`
}

type offerSchema struct {
	Type  string `json:"@type"`
	Price string `json:"price,omitempty"`
}

type serviceSchema struct {
	Context     string       `json:"@context"`
	Type        string       `json:"@type"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Provider    string       `json:"provider"`
	Offers      *offerSchema `json:"offers,omitempty"`
}

type gallerySchema struct {
	Context string   `json:"@context"`
	Type    string   `json:"@type"`
	Name    string   `json:"name"`
	Images  []string `json:"image"`
}

type videoSchema struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	EmbedURL    string `json:"embedUrl"`
	Thumbnail   string `json:"thumbnailUrl"`
}

// marshal swallows the impossible error: every schema struct above is
// trivially encodable.
func marshal(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// OrganizationJSONLD builds the Organization block.
func OrganizationJSONLD(biz *business.Record) string {
	var sameAs []string
	for _, u := range []string{biz.Social.Instagram, biz.Social.Facebook, biz.Social.Website} {
		if u != "" {
			sameAs = append(sameAs, u)
		}
	}
	return marshal(organizationSchema{
		Context: schemaContext,
		Type:    "Organization",
		Name:    biz.Name,
		URL:     biz.SubdomainURL,
		Logo:    biz.LogoURL,
		Email:   biz.Email,
		Phone:   biz.Mobile,
		SameAs:  sameAs,
	})
}

// LocalBusinessJSONLD builds the mapped local-business block.
func LocalBusinessJSONLD(biz *business.Record, vm ViewModel) string {
	sch := localBusinessSchema{
		Context:     schemaContext,
		Type:        vm.SchemaType,
		Name:        biz.Name,
		Description: vm.MetaDescription,
		URL:         biz.SubdomainURL,
		Image:       biz.LogoURL,
		Phone:       biz.Mobile,
		Email:       biz.Email,
	}
	if biz.Address != "" {
		sch.Address = &postalAddress{Type: "PostalAddress", StreetAddress: biz.Address}
	}
	sch.Geo = &geoCoordinates{Type: "GeoCoordinates", Latitude: vm.Lat, Longitude: vm.Lng}
	for _, d := range Weekdays(biz.Hours) {
		h := biz.Hours[d]
		if !h.Open {
			continue
		}
		sch.Hours = append(sch.Hours, openingSpec{
			Type:      "OpeningHoursSpecification",
			DayOfWeek: WeekdayLabels[d],
			Opens:     h.Start,
			Closes:    h.End,
		})
	}
	return marshal(sch)
}

// BreadcrumbJSONLD builds the two-level breadcrumb: home, then this page.
func BreadcrumbJSONLD(biz *business.Record) string {
	return marshal(breadcrumbSchema{
		Context: schemaContext,
		Type:    "BreadcrumbList",
		Items: []breadcrumbItem{
			{Type: "ListItem", Position: 1, Name: "Home", Item: biz.SubdomainURL},
			{Type: "ListItem", Position: 2, Name: biz.Name},
		},
	})
}

// ServiceJSONLD builds one Service block per offered service.
func ServiceJSONLD(biz *business.Record, svc business.Service) string {
	sch := serviceSchema{
		Context:     schemaContext,
		Type:        "Service",
		Name:        svc.Title,
		Description: svc.Description,
		Provider:    biz.Name,
	}
	if svc.Price != "" {
		sch.Offers = &offerSchema{Type: "Offer", Price: svc.Price}
	}
	return marshal(sch)
}

// GalleryJSONLD builds the ImageGallery block.  Caller guards on a
// non-empty image list.
func GalleryJSONLD(biz *business.Record) string {
	return marshal(gallerySchema{
		Context: schemaContext,
		Type:    "ImageGallery",
		Name:    biz.Name + " gallery",
		Images:  []string(biz.Images),
	})
}

// VideoJSONLD builds the VideoObject block.  Caller guards on a
// successfully extracted video id.
func VideoJSONLD(biz *business.Record, videoID string) string {
	return marshal(videoSchema{
		Context:     schemaContext,
		Type:        "VideoObject",
		Name:        biz.Name + " video",
		Description: TruncateDescription(biz.Descr),
		EmbedURL:    "https://www.youtube.com/embed/" + videoID,
		Thumbnail:   "https://img.youtube.com/vi/" + videoID + "/hqdefault.jpg",
	})
}
