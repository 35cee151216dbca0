// Package armory fetches guild rosters and character sheets from a
// vanilla armory site and turns them into domain records.
//
// The armory serves XML documents. Names are lower-cased here so store keys
// stay deterministic, and feed timestamps are shifted from armory server
// time to UTC.
package armory

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/rostersync/rostersync/internal/transport"
	"github.com/rostersync/rostersync/pkg/constants"
	"github.com/rostersync/rostersync/pkg/errors"
	"github.com/rostersync/rostersync/pkg/logging"
	"github.com/rostersync/rostersync/pkg/models"
	"github.com/rostersync/rostersync/pkg/reconciler"
)

// Armory documents.
const (
	GuildDocument      = "guild-info.xml"
	SheetDocument      = "character-sheet.xml"
	ReputationDocument = "character-reputation.xml"
	FeedDocument       = "character-feed.xml"
)

// Fetcher reads one realm of an armory.
type Fetcher struct {
	client  *transport.Client
	baseURL string
	realm   string
	offset  time.Duration
}

var _ reconciler.Fetcher = (*Fetcher)(nil)

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithBaseURL sets the armory root, e.g. http://armory.twinstar.cz.
func WithBaseURL(u string) Option {
	return func(f *Fetcher) {
		f.baseURL = strings.TrimRight(u, "/")
	}
}

// WithClient sets the HTTP client.
func WithClient(c *transport.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithUTCOffset sets how far armory server time runs ahead of UTC.
func WithUTCOffset(d time.Duration) Option {
	return func(f *Fetcher) {
		f.offset = d
	}
}

// New creates a Fetcher for realm.
func New(realm string, opts ...Option) (*Fetcher, error) {
	if realm == "" {
		return nil, errors.NewValidationError("realm", realm, "realm is required")
	}
	f := &Fetcher{
		baseURL: constants.DefaultArmoryURL,
		realm:   realm,
		offset:  constants.DefaultArmoryUTCOffset,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = transport.New(transport.WithAccept("application/xml, text/xml"))
	}
	if _, err := url.ParseRequestURI(f.baseURL); err != nil {
		return nil, errors.NewValidationError("armory_url", f.baseURL, "invalid armory URL")
	}
	return f, nil
}

// Realm returns the realm the fetcher reads.
func (f *Fetcher) Realm() string { return f.realm }

// Characters implements reconciler.Fetcher.
func (f *Fetcher) Characters(ctx context.Context, guild string) ([]*models.Character, error) {
	doc, err := f.fetch(ctx, "guild", GuildDocument, url.Values{"gn": {guild}}, "guildInfo")
	if err != nil {
		return nil, err
	}
	return parseCharacters(doc), nil
}

// Professions implements reconciler.Fetcher.
func (f *Fetcher) Professions(ctx context.Context, character string) ([]*models.Profession, error) {
	doc, err := f.fetch(ctx, "professions", SheetDocument, url.Values{"cn": {character}}, "characterInfo")
	if err != nil {
		return nil, err
	}
	return parseProfessions(doc, lower(character)), nil
}

// Reputations implements reconciler.Fetcher.
func (f *Fetcher) Reputations(ctx context.Context, character string) ([]*models.Reputation, error) {
	doc, err := f.fetch(ctx, "reputations", ReputationDocument, url.Values{"cn": {character}}, "characterInfo")
	if err != nil {
		return nil, err
	}
	return parseReputations(doc, lower(character)), nil
}

// Activities implements reconciler.Fetcher.
func (f *Fetcher) Activities(ctx context.Context, character string) ([]*models.Activity, error) {
	doc, err := f.fetch(ctx, "activities", FeedDocument, url.Values{"cn": {character}}, "feed")
	if err != nil {
		return nil, err
	}
	return parseActivities(doc, lower(character), f.offset), nil
}

// URL returns the address of document with query for the fetcher's realm.
func (f *Fetcher) URL(document string, query url.Values) string {
	q := url.Values{"r": {f.realm}}
	for k, v := range query {
		q[k] = v
	}
	return f.baseURL + "/" + document + "?" + q.Encode()
}

// fetch downloads and parses a document, failing when the armory answered
// with an error page or the document lacks its root element.
func (f *Fetcher) fetch(ctx context.Context, resource, document string, query url.Values, root string) (*goquery.Document, error) {
	u := f.URL(document, query)
	logging.FromContext(ctx).Debug().Str("url", u).Msg("Fetching armory document")

	resp, err := f.client.Get(ctx, u)
	if err != nil {
		return nil, errors.WrapFetch(resource, u, err)
	}
	body, err := transport.ReadBody(resp)
	if err != nil {
		var statusErr *transport.StatusError
		if errors.As(err, &statusErr) {
			return nil, errors.NewFetchError(resource, u, statusErr.StatusCode, statusErr.Error())
		}
		return nil, errors.WrapFetch(resource, u, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.WrapFetch(resource, u, errors.WrapParse("xml", document, err))
	}
	if msg, ok := errorMarker(doc); ok {
		return nil, errors.NewFetchError(resource, u, resp.StatusCode, msg)
	}
	// goquery parses as HTML, which lower-cases element names
	if doc.Find(strings.ToLower(root)).Length() == 0 {
		return nil, errors.NewFetchError(resource, u, resp.StatusCode, "document has no "+root+" element")
	}
	return doc, nil
}
