package api

// AuthData is the payload returned by the login endpoint.
type AuthData struct {
	Token        string `json:"token"`
	UserID       string `json:"userid"`
	RefreshToken string `json:"refreshToken"`
}

// Profile is the server-owned record for the logged-in user.
type Profile struct {
	UserID         string   `json:"userid"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	Name           string   `json:"name"`
	Bio            string   `json:"bio"`
	PhoneNumber    string   `json:"phone_number"`
	Address        string   `json:"address"`
	DateOfBirth    string   `json:"date_of_birth"`
	ProfilePicture string   `json:"profile_picture"`
	ProfileViews   int      `json:"profile_views"`
	Followers      []string `json:"followers"`
	Follows        []string `json:"follows"`
	IsActive       bool     `json:"is_active"`
	IsVerified     bool     `json:"is_verified"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

// PublicProfile is another user's profile as seen by the current user.
type PublicProfile struct {
	Profile
	IsFollowing bool `json:"isFollowing"`
}

// Suggestion is a follow suggestion entry.
type Suggestion struct {
	UserID   string `json:"userid"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
}

// Event is a single event summary.
type Event struct {
	EventID     string `json:"eventid"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	PlaceID     string `json:"place"`
	BannerImage string `json:"banner_image"`
	CreatorID   string `json:"creatorid"`
}

// EventsPage is one page of the events list along with the authoritative
// total count used for pagination.
type EventsPage struct {
	Events []Event `json:"events"`
	Total  int     `json:"total"`
}

// EventDetail is the full event record with its sub-resources.
type EventDetail struct {
	Event
	Tickets []Ticket `json:"tickets"`
	Merch   []Merch  `json:"merch"`
	Media   []Media  `json:"media"`
}

// Ticket is one ticket class for an event.
type Ticket struct {
	TicketID string  `json:"ticketid"`
	EventID  string  `json:"eventid"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Merch is one merchandise item for an event.
type Merch struct {
	MerchID string  `json:"merchid"`
	EventID string  `json:"eventid"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Stock   int     `json:"stock"`
}

// Media is one uploaded media item attached to an event.
type Media struct {
	MediaID string `json:"mediaid"`
	EventID string `json:"eventid"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
	Type    string `json:"type"`
}

// Place is a venue record.
type Place struct {
	PlaceID     string `json:"placeid"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Capacity    int    `json:"capacity"`
	CreatorID   string `json:"created_by"`
}

// Post is one feed entry.
type Post struct {
	PostID    string   `json:"postid"`
	UserID    string   `json:"userid"`
	Username  string   `json:"username"`
	Text      string   `json:"text"`
	MediaURLs []string `json:"media"`
	Timestamp string   `json:"timestamp"`
}

// SearchItem is one row of a search result, tagged with its entity type.
type SearchItem struct {
	Type     string  `json:"type"`
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
}

// Setting is one user-configurable setting.
type Setting struct {
	Type        string `json:"type"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Upload is an in-memory file attached to a multipart request.
type Upload struct {
	Filename string
	Content  []byte
}

// envelope is the {data, message} wrapper used by the auth endpoints.
type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
}
