// Package site serves Play Beat over HTTP.
//
// Server combines the JSON API under /api, the rendered page at / and the
// form actions under /actions. Actions mutate through api.Service and
// redirect back to the page, carrying the view state (genre, search, name,
// open FAQ entry) and the regions to bump in the query string.
//
// Every request gets a correlation id and a feedback.Recorder, so visual cues
// raised while handling it surface as js-bump classes on the rendered page or
// in the X-Playbeat-Bump response header for API callers.
//
// Small page behaviours live here as plain types: Accordion (FAQ, at most one
// answer open), Background (palette cycle), Ring (header keyboard navigation)
// and Greeting.
package site
