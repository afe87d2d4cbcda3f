// Package moviereviews defines the domain of the movie reviews service: the
// Review entity stored in the MovieReviews table, the ReviewStore and
// Translator collaborators, coded errors, selection policies for
// movie+reviewer lookups, and zerolog event helpers.
//
// Query planning lives in the planner package, persistence in store, HTTP
// transport in api and process wiring in cmd/moviereviews.
package moviereviews
