package google

// Wire shapes for the Google Geocoding and Places APIs. Optional fields are
// pointers so "absent" stays distinct from zero values.

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geometry struct {
	Location *latLng `json:"location"`
}

type openingHours struct {
	OpenNow *bool `json:"open_now"`
}

type rawPlace struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	Geometry         *geometry     `json:"geometry"`
	Vicinity         string        `json:"vicinity"`
	FormattedAddress string        `json:"formatted_address"`
	Rating           *float64      `json:"rating"`
	UserRatingsTotal *int          `json:"user_ratings_total"`
	OpeningHours     *openingHours `json:"opening_hours"`
	Types            []string      `json:"types"`
}

type geocodeResult struct {
	Geometry         *geometry `json:"geometry"`
	FormattedAddress string    `json:"formatted_address"`
}

type geocodeResponse struct {
	Status  string          `json:"status"`
	Results []geocodeResult `json:"results"`
}

type nearbyResponse struct {
	Status        string     `json:"status"`
	NextPageToken string     `json:"next_page_token"`
	Results       []rawPlace `json:"results"`
}

type detailsResult struct {
	FormattedPhoneNumber string `json:"formatted_phone_number"`
	Website              string `json:"website"`
	OpeningHours         *struct {
		WeekdayText []string `json:"weekday_text"`
	} `json:"opening_hours"`
}

type detailsResponse struct {
	Status string         `json:"status"`
	Result *detailsResult `json:"result"`
}
