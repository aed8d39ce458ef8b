package a

import "net/http"

func fetchSomething() error {
	resp, err := http.Get("https://example.com/users") // want `direct http Get call outside the remote seed package`
	if err != nil {
		return err
	}

	return resp.Body.Close()
}

func buildClient() *http.Client {
	// Constructing a client without issuing requests is fine.
	return &http.Client{}
}
