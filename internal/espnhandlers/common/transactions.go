package common

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/flaim/fantasy-mcp-gateway/internal/espnclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
	"github.com/flaim/fantasy-mcp-gateway/internal/season"
)

// transactionMessageTypes are the kona_league_communication topic types
// that represent adds/drops/waivers/trades: 178 add, 179 drop-FA,
// 180 waiver, 181 drop-waiver, 239 drop-trade, 244 trade.
var transactionMessageTypes = []int{178, 179, 180, 181, 239, 244}

const (
	maxTransactionPages = 8
	transactionsPerPage = 25
)

type upstreamMessage struct {
	ID               int64   `json:"id"`
	MessageTypeID    int     `json:"messageTypeId"`
	Date             int64   `json:"date"` // epoch millis
	ScoringPeriodID  *int    `json:"scoringPeriodId"`
	MatchupPeriodID  *int    `json:"matchupPeriodId"`
	From             *int    `json:"from"`
	TargetID         int     `json:"targetId"`
	For              []struct {
		TeamID       int `json:"teamId"`
		PlayerID     int `json:"playerId"`
	} `json:"for"`
}

type upstreamTopic struct {
	Messages        []upstreamMessage `json:"messages"`
	ScoringPeriodID *int              `json:"scoringPeriodId"`
	Date            int64             `json:"date"`
}

type upstreamCommunicationResponse struct {
	Topics []upstreamTopic `json:"topics"`
}

type upstreamGlobalPlayer struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

// playerIDFilter builds the X-Fantasy-Filter payload for the global
// players?view=players_wl lookup, scoping it to the given ids.
func playerIDFilter(ids []int) string {
	payload := map[string]any{
		"players": map[string]any{
			"filterIds": map[string]any{"value": ids},
		},
	}
	body, _ := json.Marshal(payload)
	return string(body)
}

// enrichPlayerNames resolves playerIDs to display names via ESPN's global
// players endpoint. It's best-effort: any upstream failure degrades the
// caller to bare numeric ids rather than failing the whole transactions
// call.
func (d Deps) enrichPlayerNames(ctx context.Context, creds *model.ESPNCredentials, canonicalYear int, playerIDs []int) map[string]string {
	if len(playerIDs) == 0 {
		return nil
	}
	platformYear := season.ToPlatformYear(canonicalYear, d.Sport)

	var out []upstreamGlobalPlayer
	req := espnclient.Request{
		Sport:       d.Sport,
		Path:        fmt.Sprintf("seasons/%d/players", platformYear),
		Query:       "view=players_wl",
		Credentials: creds,
		Filter:      playerIDFilter(playerIDs),
	}
	if err := d.ESPN.DecodeJSON(ctx, req, &out); err != nil {
		return nil
	}

	names := make(map[string]string, len(out))
	for _, p := range out {
		names[itoa(p.ID)] = p.FullName
	}
	return names
}

func transactionFilter(offset int) string {
	payload := map[string]any{
		"topics": map[string]any{
			"filterType":        map[string]any{"value": []string{"ACTIVITY_TRANSACTIONS"}},
			"filterIncludeMessageTypeIds": map[string]any{"value": transactionMessageTypes},
			"sortByDate":         map[string]any{"sortPriority": 1, "sortAsc": false},
			"filterOffset":       map[string]any{"value": offset},
			"filterLimit":        map[string]any{"value": transactionsPerPage},
		},
	}
	body, _ := json.Marshal(payload)
	return string(body)
}

func normalizeType(messageTypeID int) (model.TransactionType, bool) {
	switch messageTypeID {
	case 178:
		return model.TxnAdd, true
	case 180:
		return model.TxnWaiver, true
	case 179, 181, 239:
		return model.TxnDrop, true
	case 244:
		return model.TxnTrade, true
	default:
		return "", false
	}
}

// TransactionsResult is the shaped output of get_transactions.
type TransactionsResult struct {
	LeagueID     string              `json:"league_id"`
	Season       int                 `json:"season_year"`
	Transactions []model.Transaction `json:"transactions"`
}

// Transactions builds the get_transactions payload: pages up to 8x25,
// de-duplicates by message id, resolves week, and best-effort enriches
// player ids to names via the global players endpoint.
func (d Deps) Transactions(ctx context.Context, bearerToken string, params model.ToolParams) model.AdapterResult {
	creds, err := d.RequireCredentials(ctx, bearerToken)
	if err != nil {
		return AsAdapterError(err)
	}

	seen := make(map[int64]bool)
	seenPlayerIDs := make(map[int]bool)
	var playerIDs []int
	var txns []model.Transaction

	for page := 0; page < maxTransactionPages; page++ {
		var out upstreamCommunicationResponse
		req := espnclient.Request{
			Sport:       d.Sport,
			Path:        d.LeaguePath(params.SeasonYear, params.LeagueID),
			Query:       "view=kona_league_communication",
			Credentials: creds,
			Filter:      transactionFilter(page * transactionsPerPage),
		}
		if err := d.ESPN.DecodeJSON(ctx, req, &out); err != nil {
			return AsAdapterError(err)
		}
		if len(out.Topics) == 0 {
			break
		}

		pageHadNew := false
		for _, topic := range out.Topics {
			for _, msg := range topic.Messages {
				if seen[msg.ID] {
					continue
				}
				txnType, ok := normalizeType(msg.MessageTypeID)
				if !ok {
					continue
				}

				week := resolveWeek(msg, topic)
				if params.Week != nil && (week == nil || *week != *params.Week) {
					continue
				}
				if params.Type != "" && string(txnType) != params.Type {
					continue
				}

				seen[msg.ID] = true
				pageHadNew = true

				txn := model.Transaction{
					TransactionID: itoa64(msg.ID),
					Type:          txnType,
					Status:        model.TxnComplete,
					Timestamp:     time.UnixMilli(msg.Date),
					Week:          week,
				}
				if msg.MessageTypeID == 180 && msg.From != nil {
					faab := *msg.From
					txn.FAABBid = &faab
				}
				for _, f := range msg.For {
					txn.TeamIDs = append(txn.TeamIDs, itoa(f.TeamID))
					playerID := itoa(f.PlayerID)
					if !seenPlayerIDs[f.PlayerID] {
						seenPlayerIDs[f.PlayerID] = true
						playerIDs = append(playerIDs, f.PlayerID)
					}
					switch txnType {
					case model.TxnAdd, model.TxnWaiver, model.TxnTrade:
						txn.PlayersAdded = append(txn.PlayersAdded, playerID)
					case model.TxnDrop:
						txn.PlayersDropped = append(txn.PlayersDropped, playerID)
					}
				}
				txns = append(txns, txn)
			}
		}
		if !pageHadNew {
			break
		}
	}

	if limit := ClampCount(params.Count); len(txns) > limit {
		txns = txns[:limit]
	}

	if names := d.enrichPlayerNames(ctx, creds, params.SeasonYear, playerIDs); names != nil {
		for i := range txns {
			for j, id := range txns[i].PlayersAdded {
				if name, ok := names[id]; ok {
					txns[i].PlayersAdded[j] = name
				}
			}
			for j, id := range txns[i].PlayersDropped {
				if name, ok := names[id]; ok {
					txns[i].PlayersDropped[j] = name
				}
			}
		}
	}

	return model.OK(TransactionsResult{LeagueID: params.LeagueID, Season: params.SeasonYear, Transactions: txns})
}

// resolveWeek prefers message.scoringPeriodId, then matchupPeriodId, then
// the topic's scoringPeriodId. A topic-level matchupPeriodId is not read.
func resolveWeek(msg upstreamMessage, topic upstreamTopic) *int {
	if msg.ScoringPeriodID != nil {
		return msg.ScoringPeriodID
	}
	if msg.MatchupPeriodID != nil {
		return msg.MatchupPeriodID
	}
	if topic.ScoringPeriodID != nil {
		return topic.ScoringPeriodID
	}
	return nil
}

func itoa64(n int64) string {
	return itoa(int(n))
}
