/* handlers.go
 * Contains testable handler methods that accept DiscordSession interface. Each command handler returns the reply
 * text, newMessageHandler sends it and records the outcome.
 */

package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"livescore/api/api"
	"livescore/api/logic"
	"livescore/api/rules"
	"livescore/api/shared"
	"livescore/api/store"
	"livescore/logging"
	"livescore/metrics"

	"github.com/bwmarrin/discordgo"
)

const commandTimeout = 10 * time.Second

// replyError is a problem with the scorer's input. Its text is sent back as is.
type replyError struct {
	msg string
}

func (e *replyError) Error() string {
	return e.msg
}

func replyErrorf(format string, args ...any) error {
	return &replyError{msg: fmt.Sprintf(format, args...)}
}

var errNoMatch = &replyError{msg: "No match is being scored in this channel. Use `$new` or `$load` first"}

type commandHandler func(ctx context.Context, channelID string, args []string) (string, error)

func (b *Bot) handlers() map[string]commandHandler {
	return map[string]commandHandler{
		"help":   b.helpHandler,
		"new":    b.newMatchHandler,
		"load":   b.loadHandler,
		"undo":   b.undoHandler,
		"score":  b.scoreHandler,
		"result": b.resultHandler,
	}
}

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	if message.Author == nil || message.Author.ID == botUserID {
		return
	}
	if !strings.HasPrefix(message.Content, "$") {
		return
	}

	parts, err := splitCommand(message.Content)
	if err != nil || len(parts) == 0 {
		session.ChannelMessageSend(message.ChannelID, "Could not read that command, check the quotes around names")
		return
	}
	command := strings.ToLower(strings.TrimPrefix(parts[0], "$"))
	args := parts[1:]

	handler, ok := b.handlers()[command]
	if !ok {
		if _, scoring := logic.Usage[command]; !scoring {
			return
		}
		handler = b.scoringHandler(command)
	}

	if !b.allow(message.ChannelID) {
		b.metrics.RecordCommand(command, metrics.CommandRateLimited)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	reply, err := handler(ctx, message.ChannelID, args)
	if err != nil {
		reply = b.errorReply(command, message, err)
		b.metrics.RecordCommand(command, metrics.CommandError)
	} else {
		b.metrics.RecordCommand(command, metrics.CommandOK)
	}
	if _, err := session.ChannelMessageSend(message.ChannelID, reply); err != nil {
		logging.Error(b.logger, "failed to send reply", err, logging.FieldChannel, message.ChannelID)
	}
}

// errorReply turns err into the message shown to the scorer. Unexpected errors are logged and hidden.
func (b *Bot) errorReply(command string, message *discordgo.MessageCreate, err error) string {
	var reply *replyError
	var usage *logic.UsageError
	var notFound *store.MatchNotFoundError
	var unsupported *rules.UnsupportedSportError
	switch {
	case errors.As(err, &reply), errors.As(err, &usage), errors.As(err, &notFound), errors.As(err, &unsupported),
		errors.Is(err, logic.ErrUnknownContestant), errors.Is(err, logic.ErrUnknownPlayer),
		errors.Is(err, logic.ErrAmbiguousName), errors.Is(err, api.ErrInvalidMatch):
		return err.Error()
	case errors.Is(err, api.ErrResultNotReady):
		return "The match is still in progress"
	}
	logging.Error(b.logger, "command failed", err,
		logging.FieldCommand, command,
		logging.FieldChannel, message.ChannelID,
		logging.FieldUser, message.Author.Username,
	)
	return "An unexpected error occurred"
}

// helpHandler handles the $help command
func (b *Bot) helpHandler(_ context.Context, _ string, _ []string) (string, error) {
	var res strings.Builder
	res.WriteString("Live Score Bot\n")
	res.WriteString("`$new <sport> \"<team1>\" \"<team2>\" [bestOf]`: starts a match in this channel. Sports: ")
	sports := b.APIPtr.Sports()
	names := make([]string, len(sports))
	for i, s := range sports {
		names[i] = string(s)
	}
	res.WriteString(strings.Join(names, ", "))
	res.WriteString("\n`$load <matchID>`: scores an existing match in this channel\n")
	for _, command := range []string{"point", "serve", "timeout", "rotate", "allout", "toggle", "raid", "raidend", "tick",
		"runs", "extra", "wicket", "endperiod", "next"} {
		res.WriteString(fmt.Sprintf("`%s`\n", logic.Usage[command]))
	}
	res.WriteString("`$undo`: reverts the last change\n")
	res.WriteString("`$score`: shows the scoreboard\n")
	res.WriteString("`$result`: shows the result of a finished match\n")
	res.WriteString("Teams can be given as 1/2 or by name. There is fuzzy matching on names, names that contain two or more words need to be encased in \" (e.g. \"Patna Pirates\")")
	return res.String(), nil
}

// newMatchHandler handles $new <sport> "<team1>" "<team2>" [bestOf]
func (b *Bot) newMatchHandler(ctx context.Context, channelID string, args []string) (string, error) {
	if len(args) < 3 || len(args) > 4 {
		return "", replyErrorf("Usage: `$new <sport> \"<team1>\" \"<team2>\" [bestOf]`")
	}
	sport, err := shared.ParseSport(args[0])
	if err != nil {
		return "", &replyError{msg: err.Error()}
	}
	match := shared.Match{
		Sport: sport,
		Team1: shared.Contestant{Name: args[1]},
		Team2: shared.Contestant{Name: args[2]},
	}
	if len(args) == 4 {
		bestOf, err := strconv.Atoi(args[3])
		if err != nil || bestOf <= 0 || bestOf%2 == 0 {
			return "", replyErrorf("bestOf must be a positive odd number, got %q", args[3])
		}
		match.Format.BestOf = bestOf
	}

	view, err := b.APIPtr.CreateMatch(ctx, match)
	if err != nil {
		return "", err
	}
	b.bind(channelID, view.Match.ID)
	logging.Info(b.logger, "match started from discord",
		logging.FieldChannel, channelID,
		logging.FieldMatchID, view.Match.ID,
		logging.FieldSport, string(sport),
	)
	return fmt.Sprintf("Started %s match `%s`: %s vs %s\n%s",
		sport, view.Match.ID, view.Match.Team1.Name, view.Match.Team2.Name, formatView(view)), nil
}

// loadHandler handles $load <matchID>
func (b *Bot) loadHandler(ctx context.Context, channelID string, args []string) (string, error) {
	if len(args) != 1 {
		return "", replyErrorf("Usage: `$load <matchID>`")
	}
	view, err := b.APIPtr.Snapshot(ctx, args[0])
	if err != nil {
		return "", err
	}
	b.bind(channelID, view.Match.ID)
	return fmt.Sprintf("Now scoring `%s`: %s vs %s\n%s",
		view.Match.ID, view.Match.Team1.Name, view.Match.Team2.Name, formatView(view)), nil
}

// scoringHandler returns the handler for a scoring command such as $point or $wicket
func (b *Bot) scoringHandler(command string) commandHandler {
	return func(ctx context.Context, channelID string, args []string) (string, error) {
		matchID, ok := b.matchFor(channelID)
		if !ok {
			return "", errNoMatch
		}
		current, err := b.APIPtr.Snapshot(ctx, matchID)
		if err != nil {
			return "", err
		}
		action, err := logic.ParseCommand(current.Match, command, args)
		if err != nil {
			return "", err
		}
		view, err := b.APIPtr.Apply(ctx, matchID, action)
		if err != nil {
			return "", err
		}
		if !view.Changed {
			return "That does not apply right now\n" + formatView(view), nil
		}
		return formatView(view), nil
	}
}

// undoHandler handles the $undo command
func (b *Bot) undoHandler(ctx context.Context, channelID string, _ []string) (string, error) {
	matchID, ok := b.matchFor(channelID)
	if !ok {
		return "", errNoMatch
	}
	view, err := b.APIPtr.Undo(ctx, matchID)
	if err != nil {
		return "", err
	}
	if !view.Changed {
		return "Nothing to undo\n" + formatView(view), nil
	}
	return "Undone\n" + formatView(view), nil
}

// scoreHandler handles the $score command
func (b *Bot) scoreHandler(ctx context.Context, channelID string, _ []string) (string, error) {
	matchID, ok := b.matchFor(channelID)
	if !ok {
		return "", errNoMatch
	}
	view, err := b.APIPtr.Snapshot(ctx, matchID)
	if err != nil {
		return "", err
	}
	return formatView(view), nil
}

// resultHandler handles the $result command
func (b *Bot) resultHandler(ctx context.Context, channelID string, _ []string) (string, error) {
	matchID, ok := b.matchFor(channelID)
	if !ok {
		return "", errNoMatch
	}
	result, err := b.APIPtr.Result(ctx, matchID)
	if err != nil {
		return "", err
	}
	return formatResult(result), nil
}
