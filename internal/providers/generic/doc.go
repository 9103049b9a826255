// Package generic implements providers.Scraper for reader sites built on the
// common "readerarea" theme: chapter links are anchors whose target carries a
// chapter token, and page images sit in a single container element.
package generic
