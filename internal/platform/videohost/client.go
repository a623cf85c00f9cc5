// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

/*
Package videohost integrates with the external video processing provider (Mux).

Chapters reference remote video assets: the provider ingests the raw upload,
transcodes it, and exposes a playback ID once the asset is ready.

Core Responsibilities:

  - Ingest: Create an asset from a source upload URL.
  - Cleanup: Delete remote assets when chapters or courses are removed.
  - Status: Report whether an asset has finished processing.

All calls authenticate with HTTP Basic using the provider token pair.
*/
package videohost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/davitran/acadia/internal/platform/apperr"
)

// requestTimeout bounds every provider call. Transcoding itself is
// asynchronous, so API calls are expected to return quickly.
const requestTimeout = 15 * time.Second

// Asset is the provider-side representation of an uploaded video.
type Asset struct {
	AssetID    string
	PlaybackID string
	Ready      bool
}

// Client talks to the video provider's REST API.
type Client struct {
	baseURL     string
	tokenID     string
	tokenSecret string
	httpClient  *http.Client
}

// NewClient constructs a provider client with sane timeouts.
//
// # Parameters
//   - baseURL: Provider API root (e.g. https://api.mux.com).
//   - tokenID: API access token ID.
//   - tokenSecret: API access token secret.
func NewClient(baseURL, tokenID, tokenSecret string) *Client {
	return &Client{
		baseURL:     baseURL,
		tokenID:     tokenID,
		tokenSecret: tokenSecret,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// # Wire Payloads

type createAssetRequest struct {
	Input       string   `json:"input"`
	PlaybackIDs []string `json:"playback_policy"`
}

type assetResponse struct {
	Data struct {
		ID          string `json:"id"`
		Status      string `json:"status"`
		PlaybackIDs []struct {
			ID string `json:"id"`
		} `json:"playback_ids"`
	} `json:"data"`
}

/*
CreateAsset submits a source video URL for ingestion and transcoding.

Description: The provider pulls the video from uploadURL asynchronously.
The returned asset carries Ready=false until transcoding completes.

Parameters:
  - context: context.Context
  - uploadURL: string (publicly reachable source video)

Returns:
  - *Asset: Provider asset identifiers
  - err: ServiceUnavailable on provider failures
*/
func (client *Client) CreateAsset(context context.Context, uploadURL string) (*Asset, error) {

	payload, err := json.Marshal(createAssetRequest{
		Input:       uploadURL,
		PlaybackIDs: []string{"public"},
	})
	if err != nil {
		return nil, fmt.Errorf("videohost_marshal_failed: %w", err)
	}

	endpoint := client.baseURL + "/video/v1/assets"
	request, err := http.NewRequestWithContext(context, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("videohost_request_build_failed: %w", err)
	}

	request.Header.Set("Content-Type", "application/json")
	request.SetBasicAuth(client.tokenID, client.tokenSecret)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, apperr.ServiceUnavailable("Video provider is unreachable")
	}
	defer drainAndClose(response.Body)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, apperr.ServiceUnavailable(fmt.Sprintf("Video provider rejected the asset (status %d)", response.StatusCode))
	}

	var decoded assetResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("videohost_decode_failed: %w", err)
	}

	asset := &Asset{
		AssetID: decoded.Data.ID,
		Ready:   decoded.Data.Status == "ready",
	}
	if len(decoded.Data.PlaybackIDs) > 0 {
		asset.PlaybackID = decoded.Data.PlaybackIDs[0].ID
	}

	return asset, nil
}

/*
GetAsset fetches the current state of a remote asset.

Parameters:
  - context: context.Context
  - assetID: string

Returns:
  - *Asset: Provider asset identifiers with up-to-date Ready flag
  - err: NotFound or provider failures
*/
func (client *Client) GetAsset(context context.Context, assetID string) (*Asset, error) {

	endpoint := client.baseURL + "/video/v1/assets/" + assetID
	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("videohost_request_build_failed: %w", err)
	}
	request.SetBasicAuth(client.tokenID, client.tokenSecret)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, apperr.ServiceUnavailable("Video provider is unreachable")
	}
	defer drainAndClose(response.Body)

	if response.StatusCode == http.StatusNotFound {
		return nil, apperr.NotFound("Video asset not found")
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, apperr.ServiceUnavailable(fmt.Sprintf("Video provider returned status %d", response.StatusCode))
	}

	var decoded assetResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("videohost_decode_failed: %w", err)
	}

	asset := &Asset{
		AssetID: decoded.Data.ID,
		Ready:   decoded.Data.Status == "ready",
	}
	if len(decoded.Data.PlaybackIDs) > 0 {
		asset.PlaybackID = decoded.Data.PlaybackIDs[0].ID
	}

	return asset, nil
}

/*
DeleteAsset removes a remote video asset permanently.

Description: Idempotent. A 404 from the provider is treated as success since
the desired end state (asset gone) is already reached.

Parameters:
  - context: context.Context
  - assetID: string

Returns:
  - err: Provider failures other than 404
*/
func (client *Client) DeleteAsset(context context.Context, assetID string) error {

	endpoint := client.baseURL + "/video/v1/assets/" + assetID
	request, err := http.NewRequestWithContext(context, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("videohost_request_build_failed: %w", err)
	}
	request.SetBasicAuth(client.tokenID, client.tokenSecret)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return apperr.ServiceUnavailable("Video provider is unreachable")
	}
	defer drainAndClose(response.Body)

	if response.StatusCode == http.StatusNotFound {
		return nil
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return apperr.ServiceUnavailable(fmt.Sprintf("Video provider returned status %d", response.StatusCode))
	}

	return nil
}

// drainAndClose fully consumes the body so the connection can be reused.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
