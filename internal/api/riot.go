package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"lol-tracker/internal/config"

	"github.com/valyala/fasthttp"
)

// RiotClient talks to the Riot account-v1 and match-v5 APIs. Account and
// match endpoints live on the continental routes, not the platform ones.
type RiotClient struct {
	apiKey string
	route  string
	client *fasthttp.Client
}

// Platform to continental routing, per the match-v5 docs.
var routingMap = map[string]string{
	"BR1": "americas", "LA1": "americas", "LA2": "americas", "NA1": "americas",
	"EUN1": "europe", "EUW1": "europe", "TR1": "europe", "RU": "europe",
	"JP1": "asia", "KR": "asia",
	"OC1": "sea", "PH2": "sea", "SG2": "sea", "TH2": "sea", "TW2": "sea", "VN2": "sea",
}

func NewRiotClient(cfg *config.Config) *RiotClient {
	route, ok := routingMap[strings.ToUpper(cfg.Region)]
	if !ok {
		route = "europe"
	}
	return &RiotClient{
		apiKey: cfg.RiotAPIKey,
		route:  route,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// ParseRiotID splits "Name#Tag" into its parts.
func ParseRiotID(riotID string) (name, tag string, err error) {
	name, tag, found := strings.Cut(riotID, "#")
	if !found || name == "" || tag == "" {
		return "", "", fmt.Errorf("riot id must have the form Name#Tag, got %q", riotID)
	}
	return name, tag, nil
}

func (c *RiotClient) GetAccount(ctx context.Context, name, tag string) (*AccountResponse, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.route, url.PathEscape(name), url.PathEscape(tag))
	return doRequest[AccountResponse](ctx, c, u)
}

func (c *RiotClient) GetMatchIDs(ctx context.Context, puuid string, count, queue int) ([]string, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/lol/match/v5/matches/by-puuid/%s/ids?count=%d&queue=%d",
		c.route, puuid, count, queue)
	ids, err := doRequest[[]string](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

func (c *RiotClient) GetMatch(ctx context.Context, matchID string) (*MatchResponse, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/lol/match/v5/matches/%s", c.route, matchID)
	return doRequest[MatchResponse](ctx, c, u)
}

func doRequest[T any](ctx context.Context, client *RiotClient, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", client.apiKey)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	switch resp.StatusCode() {
	case fasthttp.StatusOK:
	case fasthttp.StatusForbidden:
		return nil, fmt.Errorf("riot API key invalid or expired")
	case fasthttp.StatusNotFound:
		return nil, fmt.Errorf("riot API: resource not found")
	case fasthttp.StatusTooManyRequests:
		return nil, fmt.Errorf("riot API rate limit exceeded")
	default:
		return nil, fmt.Errorf("riot API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type AccountResponse struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type MatchResponse struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID string `json:"matchId"`
}

type MatchInfo struct {
	GameDuration     int64              `json:"gameDuration"` // seconds
	GameEndTimestamp int64              `json:"gameEndTimestamp"`
	QueueID          int                `json:"queueId"`
	Participants     []MatchParticipant `json:"participants"`
}

type MatchParticipant struct {
	Puuid                   string `json:"puuid"`
	ChampionName            string `json:"championName"`
	TeamID                  int    `json:"teamId"`
	TeamPosition            string `json:"teamPosition"`
	IndividualPosition      string `json:"individualPosition"`
	Kills                   int    `json:"kills"`
	Deaths                  int    `json:"deaths"`
	Assists                 int    `json:"assists"`
	TotalMinionsKilled      int    `json:"totalMinionsKilled"`
	NeutralMinionsKilled    int    `json:"neutralMinionsKilled"`
	VisionWardsBoughtInGame int    `json:"visionWardsBoughtInGame"`
	Win                     bool   `json:"win"`
}
