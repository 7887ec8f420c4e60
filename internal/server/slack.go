package server

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"esports-digest/internal/markup"
	"esports-digest/internal/service"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
)

var helpDoc = func() markup.Doc {
	var d markup.Doc
	d.Add(markup.B(markup.Text("Commands")))
	d.Blank()
	d.Add(markup.Code("/val"), markup.Text(" Valorant tier-1 schedule"))
	d.Add(markup.Code("/vct [region]"), markup.Text(" VCT bracket for a region"))
	d.Add(markup.Code("/lol"), markup.Text(" LoL international schedule"))
	d.Add(markup.Code("/stat name#tag"), markup.Text(" recent competitive matches"))
	return d
}()

// respondWithSlackMsg writes msg as the synchronous slash command reply.
func (s *DigestServer) respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	body, err := sonic.Marshal(msg)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode slack message to JSON")
		http.Error(w, "failed to encode slack message", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func slackMessage(doc markup.Doc, public bool) slack.Message {
	text := markup.Slack{}.Render(doc)
	msg := slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
	)
	msg.Text = text
	if public {
		msg.ResponseType = slack.ResponseTypeInChannel
	} else {
		msg.ResponseType = slack.ResponseTypeEphemeral
	}
	return msg
}

func (s *DigestServer) parseSlashCommand(r *http.Request) (slack.SlashCommand, bool) {
	if s.cfg.SlackSigningSecret == "" {
		cmd, err := slack.SlashCommandParse(r)
		return cmd, err == nil
	}

	verifier, err := slack.NewSecretsVerifier(r.Header, s.cfg.SlackSigningSecret)
	if err != nil {
		return slack.SlashCommand{}, false
	}

	body, err := io.ReadAll(io.TeeReader(r.Body, &verifier))
	if err != nil {
		return slack.SlashCommand{}, false
	}
	if err := verifier.Ensure(); err != nil {
		return slack.SlashCommand{}, false
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	cmd, err := slack.SlashCommandParse(r)
	return cmd, err == nil
}

func (s *DigestServer) handleSlackCommand(w http.ResponseWriter, r *http.Request) {
	cmd, ok := s.parseSlashCommand(r)
	if !ok {
		http.Error(w, "invalid slash command", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	log := zerolog.Ctx(ctx).With().Str("command", cmd.Command).Str("channel", cmd.ChannelID).Logger()

	if cmd.ChannelID != "" {
		if _, err := s.registry.Register(ctx, cmd.ChannelID, cmd.ChannelName); err != nil {
			log.Warn().Err(err).Msg("failed to register slack channel")
		}
	}

	text := strings.TrimSpace(cmd.Text)
	log.Info().Str("text", text).Msg("slash command received")

	switch cmd.Command {
	case "/val":
		s.respondWithSlackMsg(w, slackMessage(s.schedule.Digest(ctx), true))
	case "/lol":
		s.respondWithSlackMsg(w, slackMessage(s.lol.Digest(ctx), true))
	case "/stat":
		name, tag, err := service.ParseRiotID(text)
		if err != nil {
			s.respondWithSlackMsg(w, slackMessage(service.ErrorDoc(err), false))
			return
		}
		doc, err := s.stats.Digest(ctx, name, tag)
		if err != nil {
			s.respondWithSlackMsg(w, slackMessage(service.ErrorDoc(err), false))
			return
		}
		s.respondWithSlackMsg(w, slackMessage(doc, true))
	case "/vct":
		s.respondWithSlackMsg(w, slackMessage(s.bracketLinks(text), true))
	default:
		s.respondWithSlackMsg(w, slackMessage(helpDoc, false))
	}
}

// bracketLinks answers /vct with wiki links. Slack cannot take an inline
// image in a slash command reply, so the capture is left to /v1/bracket.
func (s *DigestServer) bracketLinks(region string) markup.Doc {
	regions := service.BracketRegions
	if region != "" {
		regions = []string{region}
	}

	var d markup.Doc
	d.Add(markup.B(markup.Text("VCT brackets")))
	for _, r := range regions {
		d.Add(markup.A(service.PageURL(s.brackets.Path(r)), markup.Text(r)))
	}
	return d
}
