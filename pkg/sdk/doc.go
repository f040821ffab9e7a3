// Package photodex provides a Go client for the photodex HTTP API.
//
// The client covers the full surface: ingesting photos (directly or via
// storage-change notifications) and searching them with free-text queries.
//
//	client := photodex.New("http://localhost:8080", photodex.WithAPIKey("secret"))
//	results, err := client.Search(ctx, "photos of dogs outdoors")
package photodex
