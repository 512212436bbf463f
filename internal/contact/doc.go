// Package contact validates and submits the site's contact form.
package contact
