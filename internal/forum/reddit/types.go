package reddit

import (
	"fmt"
	"strings"
)

// apiEnvelope is the api_type=json wrapper used by write endpoints.
type apiEnvelope struct {
	JSON struct {
		Errors [][]any  `json:"errors"`
		Data   postData `json:"data"`
	} `json:"json"`
}

type postData struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	URL    string  `json:"url"`
	Things []thing `json:"things"`
}

type thing struct {
	Kind string    `json:"kind"`
	Data thingData `json:"data"`
}

type thingData struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Permalink string `json:"permalink"`
}

type listing struct {
	Data struct {
		Children []thing `json:"children"`
	} `json:"data"`
}

type flairTemplate struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (e apiEnvelope) errorMessage() string {
	if len(e.JSON.Errors) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e.JSON.Errors))
	for _, entry := range e.JSON.Errors {
		fields := make([]string, 0, len(entry))
		for _, f := range entry {
			if f == nil {
				continue
			}
			fields = append(fields, fmt.Sprint(f))
		}
		parts = append(parts, strings.Join(fields, ": "))
	}
	return strings.Join(parts, "; ")
}
