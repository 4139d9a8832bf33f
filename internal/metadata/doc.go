package metadata

// Package metadata turns a pasted URL into model.VideoMetadata. URL recognition,
// stream de-duplication and ordering live here; the provider itself sits behind
// the Source interface (YouTube via github.com/kkdai/youtube/v2, playlist links
// resolved with github.com/ytget/ytdlp/v2).
