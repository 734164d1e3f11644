package response

import "fmt"

type Link struct {
	Href   string `json:"href"`
	Method string `json:"method,omitempty"`
}

type Links map[string]Link

func self(href string) Link   { return Link{Href: href, Method: "GET"} }
func list(href string) Link   { return Link{Href: href, Method: "GET"} }
func update(href string) Link { return Link{Href: href, Method: "PUT"} }
func create(href string) Link { return Link{Href: href, Method: "POST"} }
func remove(href string) Link { return Link{Href: href, Method: "DELETE"} }

func resourcePath(collection, id string) string {
	return fmt.Sprintf("%s/%s", collection, id)
}
