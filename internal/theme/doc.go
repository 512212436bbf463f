// Package theme switches the site between light and dark presentation.
package theme
