// Spotify API implementation of [Service]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/desertthunder/sleeve/internal/models"
	"github.com/desertthunder/sleeve/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// Maximum page size of the playlist items endpoint.
	spotifyPageLimit = 100
)

var playlistIDPattern = regexp.MustCompile(`^[0-9A-Za-z]+$`)

// SpotifyImage represents an image resource. Spotify lists album images widest first.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a simplified Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyAlbum represents a simplified Spotify album.
type SpotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
	Album   SpotifyAlbum    `json:"album"`
	IsLocal bool            `json:"is_local"`
}

// SpotifyPlaylistTrack represents a track within a playlist context. Track is null for removed content.
type SpotifyPlaylistTrack struct {
	AddedAt string        `json:"added_at"`
	Track   *SpotifyTrack `json:"track"`
}

// SpotifyPaginatedPlaylistTracks is one page of the playlist items endpoint.
type SpotifyPaginatedPlaylistTracks struct {
	Items  []SpotifyPlaylistTrack `json:"items"`
	Total  int                    `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
	Next   *string                `json:"next"`
}

type playlistTracksTotal struct {
	Total int `json:"total"`
}

// SpotifyPlaylist represents the playlist metadata fields sleeve requests.
type SpotifyPlaylist struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Tracks      playlistTracksTotal `json:"tracks"`
}

// SpotifyService implements the Service interface for Spotify API interactions.
// Uses [clientcredentials] for authentication; the resulting [http.Client] refreshes the token on expiry.
type SpotifyService struct {
	config     *clientcredentials.Config
	token      *oauth2.Token
	httpClient *http.Client
	baseURL    string
}

// NewSpotifyService creates a new Spotify service with the given app credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id in credentials", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret in credentials", shared.ErrMissingCredentials)
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyTokenURL,
	}

	return &SpotifyService{
		config:     config,
		httpClient: http.DefaultClient,
		baseURL:    spotifyBaseURL,
	}, nil
}

// Authenticate obtains an app token. An "access_token" in credentials is used as-is;
// otherwise the client credentials grant is performed against the token endpoint.
func (s *SpotifyService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if accessToken, ok := credentials["access_token"]; ok && accessToken != "" {
		s.token = &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
		s.httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(s.token))
		return nil
	}

	token, err := s.config.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	s.token = token
	s.httpClient = oauth2.NewClient(ctx, oauth2.ReuseTokenSource(token, s.config.TokenSource(ctx)))
	return nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// doRequest performs an authenticated GET against the Spotify API and decodes the JSON body into result.
//
// endpoint is either a path relative to the API root or an absolute "next" URL from a paging object.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	apiURL := endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		apiURL = s.baseURL + endpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, endpoint)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: spotify API status %d", shared.ErrNotAuthenticated, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: spotify API status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// ParsePlaylistID extracts the playlist ID from an open.spotify.com link, a spotify: URI or a bare ID.
func ParsePlaylistID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "open.spotify.com/") {
		ref = "https://" + ref
	}

	var id string
	switch {
	case strings.HasPrefix(ref, "spotify:"):
		parts := strings.Split(ref, ":")
		if len(parts) >= 3 && parts[len(parts)-2] == "playlist" {
			id = parts[len(parts)-1]
		}
	case strings.Contains(ref, "://"):
		u, err := url.Parse(ref)
		if err != nil {
			return "", fmt.Errorf("%w: %v", shared.ErrInvalidPlaylist, err)
		}
		if host := u.Hostname(); host != "spotify.com" && !strings.HasSuffix(host, ".spotify.com") {
			return "", fmt.Errorf("%w: %s is not a Spotify link", shared.ErrInvalidPlaylist, u.Hostname())
		}
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		for i := 0; i < len(segments)-1; i++ {
			if segments[i] == "playlist" {
				id = segments[i+1]
				break
			}
		}
	default:
		id = ref
	}

	if id == "" || !playlistIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: %q", shared.ErrInvalidPlaylist, ref)
	}

	return id, nil
}

// Playlist retrieves playlist metadata by URL, URI or ID.
func (s *SpotifyService) Playlist(ctx context.Context, ref string) (*SpotifyPlaylist, error) {
	id, err := ParsePlaylistID(ref)
	if err != nil {
		return nil, err
	}

	query := url.Values{"fields": {"id,name,description,tracks.total"}}
	endpoint := fmt.Sprintf("/playlists/%s?%s", id, query.Encode())

	var playlist SpotifyPlaylist
	if err := s.doRequest(ctx, endpoint, &playlist); err != nil {
		return nil, err
	}

	return &playlist, nil
}

// PlaylistTracks retrieves a single page of playlist items.
func (s *SpotifyService) PlaylistTracks(ctx context.Context, ref string, limit, offset int) (*SpotifyPaginatedPlaylistTracks, error) {
	id, err := ParsePlaylistID(ref)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > spotifyPageLimit {
		limit = spotifyPageLimit
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks?limit=%d&offset=%d", id, limit, offset)

	var page SpotifyPaginatedPlaylistTracks
	if err := s.doRequest(ctx, endpoint, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// GetTitle returns the playlist name.
func (s *SpotifyService) GetTitle(ctx context.Context, ref string) (string, error) {
	playlist, err := s.Playlist(ctx, ref)
	if err != nil {
		return "", err
	}
	return playlist.Name, nil
}

// GetTracks returns every track of the playlist, following "next" links until the last page.
//
// Items without a track object (removed content) are skipped.
func (s *SpotifyService) GetTracks(ctx context.Context, ref string) ([]models.Track, error) {
	page, err := s.PlaylistTracks(ctx, ref, spotifyPageLimit, 0)
	if err != nil {
		return nil, err
	}

	var tracks []models.Track
	for {
		for _, item := range page.Items {
			if item.Track == nil {
				continue
			}
			tracks = append(tracks, toTrack(*item.Track))
		}

		if page.Next == nil || *page.Next == "" {
			break
		}

		next := *page.Next
		page = &SpotifyPaginatedPlaylistTracks{}
		if err := s.doRequest(ctx, next, page); err != nil {
			return nil, err
		}
	}

	return tracks, nil
}

// ExportPlaylist returns the playlist metadata with all its tracks.
func (s *SpotifyService) ExportPlaylist(ctx context.Context, ref string) (*models.PlaylistExport, error) {
	sp, err := s.Playlist(ctx, ref)
	if err != nil {
		return nil, err
	}

	tracks, err := s.GetTracks(ctx, ref)
	if err != nil {
		return nil, err
	}

	return &models.PlaylistExport{
		Playlist: models.Playlist{
			ID:          sp.ID,
			Name:        sp.Name,
			Description: sp.Description,
			TrackCount:  sp.Tracks.Total,
		},
		Tracks: tracks,
	}, nil
}

func toTrack(st SpotifyTrack) models.Track {
	track := models.Track{Title: st.Name}
	if len(st.Artists) > 0 {
		track.Artist = st.Artists[0].Name
	}
	if len(st.Album.Images) > 0 {
		track.ArtworkURL = st.Album.Images[0].URL
	}
	return track
}
