package api

// Track describes a catalog entry in a transport-friendly format.
type Track struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	Genre        string `json:"genre"`
	GenreLabel   string `json:"genreLabel"`
	Duration     int    `json:"duration"`
	DurationText string `json:"durationText"`
	URL          string `json:"url"`
	Label        string `json:"label"`
	Rating       int    `json:"rating"`
	Stars        string `json:"stars"`
	InPlaylist   bool   `json:"inPlaylist"`
}

// TrackList is the filtered catalog view.
type TrackList struct {
	Genre  string  `json:"genre"`
	Status string  `json:"status"`
	Query  string  `json:"query,omitempty"`
	Tracks []Track `json:"tracks"`
}

// Playlist describes the persisted playlist and playback state.
type Playlist struct {
	IDs        []int   `json:"ids"`
	Entries    []Track `json:"entries"`
	Orphans    []int   `json:"orphans,omitempty"`
	CurrentID  *int    `json:"currentId,omitempty"`
	NowPlaying string  `json:"nowPlaying"`
}

// PlaylistChange reports an add together with the resulting playlist.
type PlaylistChange struct {
	Changed  bool     `json:"changed"`
	Playlist Playlist `json:"playlist"`
}

// PruneResult lists ids purged from the playlist.
type PruneResult struct {
	Removed  []int    `json:"removed"`
	Playlist Playlist `json:"playlist"`
}

// PlayResult reports the track that started playing.
type PlayResult struct {
	Track      Track  `json:"track"`
	NowPlaying string `json:"nowPlaying"`
}

// Rating is one star control's committed value.
type Rating struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
	Stars string `json:"stars"`
}

// RatingRequest commits a rating. Key, when set, is the keyboard key that
// activated the star ("Enter" or " ").
type RatingRequest struct {
	Value int    `json:"value"`
	Key   string `json:"key,omitempty"`
}

// Theme describes the applied theme and its toggle control.
type Theme struct {
	Theme     string `json:"theme"`
	BodyClass string `json:"bodyClass"`
	Label     string `json:"label"`
	AriaLabel string `json:"ariaLabel"`
	Pressed   bool   `json:"ariaPressed"`
}

// Quote is a loaded quote.
type Quote struct {
	Text string `json:"text"`
}

// ContactRequest carries the contact form fields.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactResponse is the form status after a submission.
type ContactResponse struct {
	Status string         `json:"status"`
	Sent   bool           `json:"sent"`
	Form   ContactRequest `json:"form"`
	ID     string         `json:"id,omitempty"`
}

// Clock is one clock tick.
type Clock struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Greeting is the greeting line for a visitor name.
type Greeting struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// DependencyStatus captures availability of an external dependency.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// Status aggregates runtime information.
type Status struct {
	Running        bool               `json:"running"`
	PID            int                `json:"pid"`
	StorePath      string             `json:"storePath,omitempty"`
	LockPath       string             `json:"lockPath,omitempty"`
	SocketPath     string             `json:"socketPath,omitempty"`
	APIBind        string             `json:"apiBind,omitempty"`
	Tracks         int                `json:"tracks"`
	PlaylistLength int                `json:"playlistLength"`
	Orphans        int                `json:"orphans"`
	CurrentID      *int               `json:"currentId,omitempty"`
	NowPlaying     string             `json:"nowPlaying,omitempty"`
	Theme          string             `json:"theme"`
	Ratings        int                `json:"ratings"`
	Dependencies   []DependencyStatus `json:"dependencies"`
}
