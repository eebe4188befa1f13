package inngest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"
)

// New registers the scheduled announcement functions on inngestClient.
func New(inngestClient inngestgo.Client, announcer Announcer, schedule Schedule) (InngestClient, error) {
	c := &client{
		inngestClient: inngestClient,
		announcer:     announcer,
	}
	if _, err := c.createCronFunction("weekly-leaders", "Post weekly leaders", schedule.WeeklyLeaders, c.postWeeklyLeaders); err != nil {
		return nil, err
	}
	if _, err := c.createCronFunction("leaderboard", "Post leaderboard", schedule.Leaderboard, c.postLeaderboard); err != nil {
		return nil, err
	}
	return c, nil
}

func (i *client) createCronFunction(id, name, cron string, post func(ctx context.Context) (string, error)) (inngestgo.ServableFunction, error) {
	config := inngestgo.FunctionOpts{
		ID:   id,
		Name: name,
	}
	f, err := inngestgo.CreateFunction(
		i.inngestClient,
		config,
		inngestgo.CronTrigger(cron),
		func(ctx context.Context, input inngestgo.Input[map[string]any]) (any, error) {
			// Steps are retried on failure without repeating completed ones.
			return step.Run(ctx, id, post)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create function %s: %w", id, err)
	}
	log.Info("Registered scheduled function", "id", id, "cron", cron)
	return f, nil
}

func (i *client) postWeeklyLeaders(ctx context.Context) (string, error) {
	if err := i.announcer.PostWeeklyLeaders(false); err != nil {
		log.Error("Scheduled weekly leaders failed", "error", err)
		return "", err
	}
	return "OK", nil
}

func (i *client) postLeaderboard(ctx context.Context) (string, error) {
	if err := i.announcer.PostLeaderboard(false); err != nil {
		log.Error("Scheduled leaderboard failed", "error", err)
		return "", err
	}
	return "OK", nil
}

func (i *client) Serve() http.Handler {
	return i.inngestClient.Serve()
}
