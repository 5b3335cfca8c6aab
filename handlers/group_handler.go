package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Dosada05/chess-league/config"
	"github.com/Dosada05/chess-league/models"
	"github.com/Dosada05/chess-league/services"
)

type GroupHandler struct {
	groupService     services.GroupService
	scheduleService  services.ScheduleService
	standingsService services.StandingsService
}

func NewGroupHandler(gs services.GroupService, ss services.ScheduleService, st services.StandingsService) *GroupHandler {
	return &GroupHandler{
		groupService:     gs,
		scheduleService:  ss,
		standingsService: st,
	}
}

type createGroupInput struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Federation  string  `json:"federation"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Rounds      int     `json:"rounds"`
	Organizer   string  `json:"organizer"`
	Arbiter     string  `json:"arbiter"`
	TimeControl string  `json:"time_control"`
	Weekday     *string `json:"weekday"`
}

// CreateHandler handles POST /groups
func (h *GroupHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input createGroupInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	start, err := parseDate("start_date", input.StartDate)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	end, err := parseDate("end_date", input.EndDate)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Rounds < 0 {
		badRequestResponse(w, r, errors.New("rounds must not be negative"))
		return
	}

	weekday := time.Weekday(-1)
	if input.Weekday != nil && *input.Weekday != "" {
		weekday, err = config.ParseWeekday(*input.Weekday)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	group := &models.Group{
		Name:        input.Name,
		Location:    input.Location,
		Federation:  input.Federation,
		StartDate:   start,
		EndDate:     end,
		Rounds:      input.Rounds,
		Organizer:   input.Organizer,
		Arbiter:     input.Arbiter,
		TimeControl: input.TimeControl,
		Weekday:     weekday,
	}
	if err := h.groupService.Create(r.Context(), group); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"group": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetHandler handles GET /groups/{groupID}
func (h *GroupHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	group, err := h.groupService.Get(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"group": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type addParticipantInput struct {
	SeedPosition   int        `json:"seed_position"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Club           string     `json:"club"`
	Federation     string     `json:"federation"`
	FideID         *int       `json:"fide_id"`
	NationalRating *int       `json:"national_rating"`
	FideRating     *int       `json:"fide_rating"`
	BirthYear      *int       `json:"birth_year"`
	Sex            models.Sex `json:"sex"`
	Title          string     `json:"title"`
}

// AddParticipantHandler handles POST /groups/{groupID}/participants
func (h *GroupHandler) AddParticipantHandler(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input addParticipantInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	p := &models.Participant{
		SeedPosition:   input.SeedPosition,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Club:           input.Club,
		Federation:     input.Federation,
		FideID:         input.FideID,
		NationalRating: input.NationalRating,
		FideRating:     input.FideRating,
		BirthYear:      input.BirthYear,
		Sex:            input.Sex,
		Title:          input.Title,
	}
	if err := h.groupService.AddParticipant(r.Context(), groupID, p); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"participant": p}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListParticipantsHandler handles GET /groups/{groupID}/participants
func (h *GroupHandler) ListParticipantsHandler(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participants, err := h.groupService.ListParticipants(r.Context(), groupID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if participants == nil {
		participants = []models.Participant{}
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"participants": participants}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type withdrawalInput struct {
	WithdrawnAt *time.Time `json:"withdrawn_at"`
}

// WithdrawalHandler handles PATCH /participants/{participantID}/withdrawal.
// A null withdrawn_at reinstates the participant.
func (h *GroupHandler) WithdrawalHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input withdrawalInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	p, err := h.groupService.SetWithdrawal(r.Context(), id, input.WithdrawnAt)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"participant": p}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StandingsHandler handles GET /groups/{groupID}/standings?round=N
func (h *GroupHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round := 0
	if roundStr := r.URL.Query().Get("round"); roundStr != "" {
		round, err = strconv.Atoi(roundStr)
		if err != nil || round < 0 {
			badRequestResponse(w, r, errors.New("invalid round query parameter"))
			return
		}
	}

	table, err := h.standingsService.Standings(r.Context(), groupID, round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateScheduleHandler handles POST /groups/{groupID}/schedule
func (h *GroupHandler) GenerateScheduleHandler(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	games, err := h.scheduleService.Generate(r.Context(), groupID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"games": games}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// FixturesHandler handles GET /groups/{groupID}/games
func (h *GroupHandler) FixturesHandler(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	games, err := h.scheduleService.Fixtures(r.Context(), groupID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"games": games}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
