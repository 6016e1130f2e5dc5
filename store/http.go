package store

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

// HTTPBackend is a read-only Backend serving group/array metadata and
// chunks as plain GET requests against endpoint, retrying transient
// failures via go-retryablehttp.
type HTTPBackend struct {
	endpoint string
	client   *retryablehttp.Client
}

// OpenHTTPBackend returns a Backend reading from endpoint. No request
// is made until the first Open*/Retrieve* call.
func OpenHTTPBackend(endpoint string) *HTTPBackend {
	client := retryablehttp.NewClient()
	client.Logger = nil
	return &HTTPBackend{endpoint: endpoint, client: client}
}

func (h *HTTPBackend) ReadOnly() bool { return true }

func (h *HTTPBackend) Exists(path string) (bool, error) {
	resp, err := h.client.Head(h.endpoint + path)
	if err != nil {
		return false, errors.Wrap(err, "store: http HEAD")
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

func (h *HTTPBackend) CreateGroup(string, GroupMeta) error { return ReadOnlyBackend }
func (h *HTTPBackend) CreateArray(string, ArrayMeta) error { return ReadOnlyBackend }

func (h *HTTPBackend) StoreChunk(string, int, []byte) error  { return ReadOnlyBackend }
func (h *HTTPBackend) StoreSubset(string, int, []byte) error { return ReadOnlyBackend }

func (h *HTTPBackend) RetrieveSubset(arrayPath string, rowOffset int) ([]byte, error) {
	return h.getBytes(fmt.Sprintf("%s/%s", arrayPath, url.PathEscape(string(subsetKey("", rowOffset)))))
}

func (h *HTTPBackend) OpenGroup(path string) (GroupMeta, error) {
	var meta GroupMeta
	err := h.getJSON(path+"/.group.json", &meta)
	return meta, err
}

func (h *HTTPBackend) OpenArray(path string) (ArrayMeta, error) {
	var meta ArrayMeta
	err := h.getJSON(path+"/.array.json", &meta)
	return meta, err
}

func (h *HTTPBackend) RetrieveChunk(arrayPath string, chunkIndex int) ([]byte, error) {
	return h.getBytes(fmt.Sprintf("%s/%s", arrayPath, url.PathEscape(string(chunkKey("", chunkIndex)))))
}

func (h *HTTPBackend) Close() error { return nil }

func (h *HTTPBackend) getJSON(path string, v interface{}) error {
	data, err := h.getBytes(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (h *HTTPBackend) getBytes(path string) ([]byte, error) {
	resp, err := h.client.Get(h.endpoint + path)
	if err != nil {
		return nil, errors.Wrap(err, "store: http GET")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, PathDoesNotExist
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store: http GET %s: status %s", path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
