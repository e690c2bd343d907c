package api

import (
	"fmt"
	"strings"

	"github.com/geekhub/mainframe/internal/domain/actions"
	"github.com/geekhub/mainframe/internal/domain/cards"
	"github.com/geekhub/mainframe/internal/domain/gacha"
	"github.com/geekhub/mainframe/internal/domain/profile"
	"github.com/geekhub/mainframe/internal/domain/ranking"
	"github.com/gofiber/fiber/v2"
)

// Handler serves the /mainframe routes.
type Handler struct {
	actions  actions.Service
	cards    cards.Service
	profiles profile.Service
	ranking  ranking.Service
}

func NewHandler(actionService actions.Service, cardService cards.Service, profileService profile.Service, rankingService ranking.Service) *Handler {
	return &Handler{
		actions:  actionService,
		cards:    cardService,
		profiles: profileService,
		ranking:  rankingService,
	}
}

type callerRequest struct {
	TwitchID    string   `json:"twitch_id"`
	DisplayName string   `json:"twitch_display_name"`
	Avatar      string   `json:"twitch_avatar"`
	Roles       []string `json:"twitch_roles"`
}

func (r callerRequest) caller() actions.Caller {
	return actions.Caller{
		TwitchID:    r.TwitchID,
		DisplayName: r.DisplayName,
		Avatar:      r.Avatar,
		Roles:       r.Roles,
	}
}

// missing lists the required identity fields left blank.
func (r callerRequest) missing() map[string]string {
	details := map[string]string{}
	if strings.TrimSpace(r.TwitchID) == "" {
		details["twitch_id"] = "Required"
	}
	if strings.TrimSpace(r.DisplayName) == "" {
		details["twitch_display_name"] = "Required"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func (r callerRequest) identity() callerRequest { return r }

// identified is any request body that embeds the caller fields.
type identified interface {
	identity() callerRequest
}

// parseCaller binds the body and checks the identity fields. It reports false
// once a response has been written.
func parseCaller[T identified](c *fiber.Ctx, req *T) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, SendBadRequest(c, "Invalid request body", nil)
	}
	if details := (*req).identity().missing(); details != nil {
		return false, SendBadRequest(c, "Validation failed", details)
	}
	return true, nil
}

func (h *Handler) LoginWidget(c *fiber.Ctx) error {
	var req callerRequest
	if ok, err := parseCaller(c, &req); !ok {
		return err
	}

	p, err := h.actions.Login(c.UserContext(), req.caller())
	if err != nil {
		return SendEngineError(c, err)
	}

	return SendSuccess(c, fiber.Map{
		"local_id":            p.ID,
		"twitch_id":           p.TwitchID,
		"twitch_display_name": p.DisplayName,
		"avatar":              p.Avatar,
		"user_card":           p.DefaultCard,
		"user_cards":          p.Cards,
		"exp":                 p.Exp,
		"is_premium":          p.IsPremium,
		"level":               p.Level,
		"title":               p.Title,
		"level_progress":      p.Progress,
		"stats":               p.Stats,
		"achievements":        p.Achievements,
		"sub_months":          p.SubMonths,
		"team":                p.Team,
	}, "Login successful")
}

type checkInRequest struct {
	callerRequest
	CheckinCount int64 `json:"checkin_count"`
}

func (h *Handler) CheckIn(c *fiber.Ctx) error {
	var req checkInRequest
	if ok, err := parseCaller(c, &req); !ok {
		return err
	}

	res, err := h.actions.CheckIn(c.UserContext(), req.caller(), req.CheckinCount)
	if err != nil {
		return SendEngineError(c, err)
	}

	data := fiber.Map{
		"twitch_id":          res.User.TwitchID,
		"local_id":           res.User.ID,
		"level":              res.Level,
		"is_premium":         res.IsPremium,
		"default_card_name":  "",
		"default_card_title": "",
		"has_achievement":    len(res.Achievements) > 0,
		"achievement":        strings.Join(res.Achievements, ", "),
	}
	if res.DefaultCard != nil {
		data["default_card_name"] = res.DefaultCard.Sysname
		data["default_card_title"] = res.DefaultCard.Title()
	}
	return SendSuccess(c, data, "Check-in successful")
}

func (h *Handler) Gacha(c *fiber.Ctx) error {
	var req callerRequest
	if ok, err := parseCaller(c, &req); !ok {
		return err
	}

	res, err := h.actions.Gacha(c.UserContext(), req.caller())
	if err != nil {
		return SendEngineError(c, err)
	}

	pulled := res.Outcome.Card
	data := fiber.Map{
		"output_card_name": pulled.Sysname,
		"card_name":        "",
		"success":          res.Outcome.IsNew(),
		"is_new":           res.Outcome.IsNew(),
		"achievements":     res.Achievements,
	}
	if res.DefaultCard != nil {
		data["card_name"] = res.DefaultCard.Sysname
	}

	title := pulled.Name
	if pulled.IsPremium {
		title = "Premium " + title
	}

	switch res.Outcome.Kind {
	case gacha.Issued:
		data["card_name"] = pulled.Sysname
		return SendSuccess(c, data, fmt.Sprintf("You pulled a [%s] Card! It's been added to your collection!", title))
	case gacha.Sentinel:
		data["reason"] = gacha.Sentinel.String()
		return SendSuccess(c, data, "Sorry! Try again!")
	default:
		data["reason"] = gacha.Duplicate.String()
		return SendSuccess(c, data, fmt.Sprintf("You pulled a [%s] Card! You already have this card.", title))
	}
}

type changeCardRequest struct {
	callerRequest
	NewCardName string `json:"new_card_name"`
}

func (h *Handler) ChangeCard(c *fiber.Ctx) error {
	var req changeCardRequest
	if ok, err := parseCaller(c, &req); !ok {
		return err
	}
	if strings.TrimSpace(req.NewCardName) == "" {
		return SendBadRequest(c, "Validation failed", map[string]string{"new_card_name": "Required"})
	}

	card, err := h.actions.ChangeCard(c.UserContext(), req.caller(), req.NewCardName)
	if err != nil {
		return SendEngineError(c, err)
	}

	return SendSuccess(c, fiber.Map{"new_card": card.Sysname},
		fmt.Sprintf("You are now using your %s Card!", card.Title()))
}

func (h *Handler) GetCards(c *fiber.Ctx) error {
	var req callerRequest
	if ok, err := parseCaller(c, &req); !ok {
		return err
	}

	col, err := h.actions.GetCards(c.UserContext(), req.caller())
	if err != nil {
		return SendEngineError(c, err)
	}

	owned := col.Cards
	if owned == nil {
		owned = []cards.Card{}
	}
	data := fiber.Map{"cards": owned, "default": col.Default}

	switch len(owned) {
	case 0:
		return SendSuccess(c, data, "You're not registered in the Frequent Flyer Program yet.")
	case 1:
		return SendSuccess(c, data,
			fmt.Sprintf("You have the [%s] Card. Collect more via Mystery Card Pull!", owned[0].Sysname))
	}

	names := make([]string, len(owned))
	for i, card := range owned {
		names[i] = card.Sysname
	}
	return SendSuccess(c, data, fmt.Sprintf(
		"You have (%d) cards: [%s]. Use !setcard <keyword> to change your active card!",
		len(owned), strings.Join(names, ", ")))
}

func (h *Handler) AvailableCards(c *fiber.Ctx) error {
	entries, err := h.cards.Available(c.UserContext())
	if err != nil {
		return SendEngineError(c, err)
	}
	return SendSuccess(c, fiber.Map{"cards": entries}, "Available cards retrieved")
}

func (h *Handler) Catalog(c *fiber.Ctx) error {
	entries, err := h.cards.Catalog(c.UserContext())
	if err != nil {
		return SendEngineError(c, err)
	}
	return SendSuccess(c, fiber.Map{"catalog": entries}, "Catalog retrieved")
}

type userProfileRequest struct {
	UserID int64 `json:"user_id"`
}

func (h *Handler) UserProfile(c *fiber.Ctx) error {
	var req userProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return SendBadRequest(c, "Invalid request body", nil)
	}
	if req.UserID <= 0 {
		return SendBadRequest(c, "Validation failed", map[string]string{"user_id": "Required"})
	}

	p, err := h.profiles.BuildByID(c.UserContext(), req.UserID)
	if err != nil {
		return SendEngineError(c, err)
	}
	return SendSuccess(c, p, "Profile retrieved")
}

// sendActionRequest carries stat writes as parallel arrays.
type sendActionRequest struct {
	callerRequest
	Exp       float64  `json:"exp"`
	StatNames []string `json:"stat_name"`
	Values    []int64  `json:"value"`
	Increment []bool   `json:"increment"`
}

func (r sendActionRequest) toAction() (actions.SendActionRequest, map[string]string) {
	if len(r.Values) != len(r.StatNames) {
		return actions.SendActionRequest{}, map[string]string{"value": "Must have one entry per stat_name"}
	}
	if len(r.Increment) != 0 && len(r.Increment) != len(r.StatNames) {
		return actions.SendActionRequest{}, map[string]string{"increment": "Must have one entry per stat_name"}
	}

	stats := make([]actions.StatChange, len(r.StatNames))
	for i, name := range r.StatNames {
		stats[i] = actions.StatChange{Key: name, Value: r.Values[i]}
		if len(r.Increment) > 0 {
			stats[i].Increment = r.Increment[i]
		}
	}
	return actions.SendActionRequest{
		Caller: r.caller(),
		Exp:    r.Exp,
		Stats:  stats,
	}, nil
}

func (h *Handler) SendAction(c *fiber.Ctx) error {
	var req sendActionRequest
	if ok, err := parseCaller(c, &req); !ok {
		return err
	}
	action, details := req.toAction()
	if details != nil {
		return SendBadRequest(c, "Validation failed", details)
	}

	unlocked, err := h.actions.SendAction(c.UserContext(), action)
	if err != nil {
		return SendEngineError(c, err)
	}

	message := "Action completed"
	if len(unlocked) > 0 {
		message = "Congrats! You earned: " + strings.Join(unlocked, ", ")
	}
	return SendSuccess(c, fiber.Map{
		"has_achievement": len(unlocked) > 0,
		"achievements":    strings.Join(unlocked, ", "),
	}, message)
}

type rankingRequest struct {
	RankType    string `json:"rank_type"`
	ItemsToShow *int   `json:"items_to_show"`
}

func (h *Handler) Ranking(c *fiber.Ctx) error {
	var req rankingRequest
	if err := c.BodyParser(&req); err != nil {
		return SendBadRequest(c, "Invalid request body", nil)
	}

	rankType := ranking.Type(req.RankType)
	if !rankType.Valid() {
		names := make([]string, len(ranking.Types))
		for i, t := range ranking.Types {
			names[i] = string(t)
		}
		return SendBadRequest(c, "Validation failed", map[string]string{
			"rank_type": "Must be one of: " + strings.Join(names, ", "),
		})
	}

	limit := ranking.DefaultLimit
	if req.ItemsToShow != nil {
		limit = *req.ItemsToShow
	}

	entries, err := h.ranking.GetRanking(c.UserContext(), rankType, limit)
	if err != nil {
		return SendEngineError(c, err)
	}
	if entries == nil {
		entries = []ranking.Entry{}
	}
	return SendSuccess(c, entries, "Rankings retrieved")
}

type flightReportRequest struct {
	UserName string `json:"user_name"`
}

func (h *Handler) FlightReport(c *fiber.Ctx) error {
	var req flightReportRequest
	if err := c.BodyParser(&req); err != nil {
		return SendBadRequest(c, "Invalid request body", nil)
	}
	if strings.TrimSpace(req.UserName) == "" {
		return SendBadRequest(c, "Validation failed", map[string]string{"user_name": "Required"})
	}

	report, err := h.ranking.GetFlightReport(c.UserContext(), req.UserName)
	if err != nil {
		return SendEngineError(c, err)
	}
	return SendSuccess(c, report, "Flight report retrieved")
}
