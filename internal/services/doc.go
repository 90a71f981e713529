// Package services implements the network collaborators of the sleeve pipeline.
//
// # Playlist Client
//
// [SpotifyService] implements [Service] against the Spotify Web API. It authenticates with the
// OAuth2 client credentials flow (no user login is needed to read public playlists); the
// [oauth2] transport refreshes the app token automatically. A pre-issued access token may be
// supplied instead.
//
// Playlists are referenced by open.spotify.com link, spotify:playlist: URI or bare ID, see
// [ParsePlaylistID]. [SpotifyService.GetTracks] follows the paging "next" links until the
// whole playlist has been read.
//
// # Image Fetch
//
// [ArtworkService] implements [ImageFetcher]. Requests are paced by a token-bucket limiter
// and may be served from an [ArtworkCache] (see repositories.ArtworkRepository).
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called, or the API answered 401/403
//   - [shared.ErrPlaylistNotFound] : the API answered 404
//   - [shared.ErrAPIRequest] : any other failed request
//   - [shared.ErrImageFetch] / [shared.ErrImageDecode] : artwork download or decode failure
package services
