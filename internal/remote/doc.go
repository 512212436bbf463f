// Package remote simulates the site's backend calls: a contact endpoint and a
// quote service. Both answer with canned data after a fixed delay. Accepted
// contact messages can additionally be forwarded through notifications.
package remote
