// Package console implements the interactive numbered menu over the graph
// service.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/vanshika/socialgraph/internal/render"
	"github.com/vanshika/socialgraph/internal/service"
	"github.com/vanshika/socialgraph/internal/socialgraph"
)

// errInputClosed ends the session when the input stream is exhausted.
var errInputClosed = errors.New("input closed")

// Console drives the menu loop. It is not safe for concurrent use.
type Console struct {
	svc    *service.GraphService
	in     *bufio.Scanner
	out    io.Writer
	st     styles
	logger *slog.Logger
}

// New creates a Console reading commands from in and writing to out.
func New(svc *service.GraphService, in io.Reader, out io.Writer, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Console{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		st:     newStyles(out),
		logger: logger.With("component", "console"),
	}
}

type menuEntry struct {
	key    string
	label  string
	action func(context.Context) error
}

func (c *Console) entries() []menuEntry {
	return []menuEntry{
		{"1", "Add user", c.addUser},
		{"2", "Remove user", c.removeUser},
		{"3", "Add connection", c.addConnection},
		{"4", "Remove connection", c.removeConnection},
		{"5", "Shortest path between two users", c.shortestPath},
		{"6", "Find communities (cycles in the graph)", c.communities},
		{"7", "Suggest friends", c.suggestFriends},
		{"8", "Render graph (DOT)", c.renderGraph},
		{"9", "Centrality ranking", c.centrality},
		{"10", "Save and exit", nil},
	}
}

// Run shows the menu until the operator saves and exits or the input ends.
// End of input leaves without saving.
func (c *Console) Run(ctx context.Context) error {
	entries := c.entries()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.printMenu(entries)

		choice, err := c.ask("Select an option")
		if errors.Is(err, errInputClosed) {
			c.println(c.st.muted.Render("Input closed, exiting without saving."))
			return nil
		}
		if err != nil {
			return fmt.Errorf("read menu choice: %w", err)
		}

		entry, ok := lookup(entries, choice)
		if !ok {
			c.println(c.st.error.Render(fmt.Sprintf("Invalid option %q, try again.", choice)))
			continue
		}

		if entry.action == nil {
			if err := c.svc.Save(ctx); err != nil {
				c.println(c.st.error.Render("Could not save the graph: " + err.Error()))
				continue
			}
			c.println(c.st.success.Render("Graph saved to " + c.svc.StoreName() + ". Goodbye!"))
			return nil
		}

		err = entry.action(ctx)
		switch {
		case errors.Is(err, errInputClosed):
			c.println(c.st.muted.Render("Input closed, exiting without saving."))
			return nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		case err != nil:
			c.report(err)
		}
	}
}

func lookup(entries []menuEntry, key string) (menuEntry, bool) {
	for _, e := range entries {
		if e.key == key {
			return e, true
		}
	}
	return menuEntry{}, false
}

func (c *Console) printMenu(entries []menuEntry) {
	c.println("")
	c.println(c.st.title.Render("--- Social Graph Menu ---"))
	for _, e := range entries {
		c.println(fmt.Sprintf("%s %s", c.st.option.Render(e.key+"."), e.label))
	}
}

func (c *Console) addUser(ctx context.Context) error {
	id, err := c.askUser("Name of the user to add")
	if err != nil {
		return err
	}
	created, err := c.svc.AddUser(ctx, id)
	if err != nil {
		return err
	}
	if !created {
		c.println(c.st.warning.Render(fmt.Sprintf("User %q already exists.", id)))
		return nil
	}
	c.println(c.st.success.Render(fmt.Sprintf("User %q added.", id)))

	if err := c.listUsers(ctx); err != nil {
		return err
	}
	c.println(c.st.muted.Render("Note: a lower weight means a stronger connection."))

	for {
		answer, err := c.ask("Add a connection for this user? (y/n)")
		if err != nil {
			return err
		}
		switch strings.ToLower(answer) {
		case "y", "s":
			other, err := c.askUser("User to connect to")
			if err == nil {
				err = c.connect(ctx, id, other)
			}
			if errors.Is(err, errInputClosed) {
				return err
			}
			if err != nil {
				c.report(err)
			}
		case "n":
			return nil
		default:
			c.println(c.st.error.Render("Invalid option, answer y or n."))
		}
	}
}

func (c *Console) removeUser(ctx context.Context) error {
	id, err := c.askUser("Name of the user to remove")
	if err != nil {
		return err
	}
	if err := c.svc.RemoveUser(ctx, id); err != nil {
		return err
	}
	c.println(c.st.success.Render(fmt.Sprintf("User %q and all of their connections were removed.", id)))
	return nil
}

func (c *Console) addConnection(ctx context.Context) error {
	if err := c.listUsers(ctx); err != nil {
		return err
	}
	c.println(c.st.muted.Render("Note: a lower weight means a stronger connection."))

	a, err := c.askUser("First user")
	if err != nil {
		return err
	}
	b, err := c.askUser("Second user")
	if err != nil {
		return err
	}
	return c.connect(ctx, a, b)
}

// connect asks for a weight and links a to b. Both ids must already be
// normalized.
func (c *Console) connect(ctx context.Context, a, b string) error {
	users, err := c.svc.Users(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(users, a) || !slices.Contains(users, b) {
		return fmt.Errorf("connect %q and %q: %w", a, b, socialgraph.ErrNodesMissing)
	}

	text, err := c.ask("Connection weight (lower = stronger)")
	if err != nil {
		return err
	}
	weight, err := socialgraph.ParseWeight(text)
	if err != nil {
		return err
	}
	if err := c.svc.Connect(ctx, service.ConnectionInput{Source: a, Target: b, Weight: weight}); err != nil {
		return err
	}
	c.println(c.st.success.Render(fmt.Sprintf("Connected %q and %q with weight %d.", a, b, weight)))
	return nil
}

func (c *Console) removeConnection(ctx context.Context) error {
	a, err := c.askUser("First user")
	if err != nil {
		return err
	}
	b, err := c.askUser("Second user")
	if err != nil {
		return err
	}
	if err := c.svc.Disconnect(ctx, a, b); err != nil {
		return err
	}
	c.println(c.st.success.Render(fmt.Sprintf("Connection between %q and %q removed.", a, b)))
	return nil
}

func (c *Console) shortestPath(ctx context.Context) error {
	source, err := c.askUser("Start user")
	if err != nil {
		return err
	}
	target, err := c.askUser("Destination user")
	if err != nil {
		return err
	}
	path, err := c.svc.ShortestPath(ctx, source, target)
	if err != nil {
		return err
	}
	c.println(fmt.Sprintf("Shortest path from %q to %q: %s (cost %s)",
		source, target,
		c.st.value.Render(strings.Join(path.Nodes, " -> ")),
		c.st.value.Render(fmt.Sprint(path.Cost))))
	return nil
}

func (c *Console) communities(ctx context.Context) error {
	c.println("Looking for cycles in the graph:")
	cycles, err := c.svc.Communities(ctx)
	if err != nil {
		return err
	}
	if len(cycles) == 0 {
		c.println(c.st.muted.Render("No cycles found."))
		return nil
	}
	for i, cycle := range cycles {
		c.println(fmt.Sprintf("  Cycle %d: %s", i+1, strings.Join(cycle.Members, ", ")))
	}
	return nil
}

func (c *Console) suggestFriends(ctx context.Context) error {
	user, err := c.askUser("User to suggest friends for")
	if err != nil {
		return err
	}
	suggestions, err := c.svc.SuggestFriends(ctx, user)
	if err != nil {
		return err
	}
	c.println(fmt.Sprintf("Friend suggestions for %q:", user))
	if len(suggestions) == 0 {
		c.println(c.st.muted.Render("  none"))
	}
	for _, s := range suggestions {
		c.println(fmt.Sprintf("  %s (mutual friends: %d)", s.User, s.MutualFriends))
	}
	return nil
}

func (c *Console) renderGraph(ctx context.Context) error {
	snapshot, err := c.svc.Snapshot(ctx)
	if err != nil {
		return err
	}
	c.println(c.st.muted.Render("Pipe the following into `neato -Tpng` to draw it:"))
	return render.DOT(c.out, snapshot, render.DefaultOptions())
}

func (c *Console) centrality(ctx context.Context) error {
	ranking, err := c.svc.Centrality(ctx)
	if err != nil {
		return err
	}
	c.println("Most connected users:")
	for _, r := range ranking {
		c.println(fmt.Sprintf("  %s: centrality = %.2f", r.User, r.Score))
	}
	return nil
}

func (c *Console) listUsers(ctx context.Context) error {
	users, err := c.svc.Users(ctx)
	if err != nil {
		return err
	}
	c.println("Existing users:")
	for _, u := range users {
		c.println("  - " + u)
	}
	return nil
}

// report prints a domain error as an operator-facing message.
func (c *Console) report(err error) {
	var msg string
	switch {
	case errors.Is(err, socialgraph.ErrNodesMissing):
		msg = "Both users must exist to be connected."
	case errors.Is(err, socialgraph.ErrInvalidWeight):
		msg = "The weight must be a non-negative whole number."
	case errors.Is(err, socialgraph.ErrSelfConnection):
		msg = "A user cannot be connected to themselves."
	case errors.Is(err, socialgraph.ErrEdgeNotFound):
		msg = "There is no connection between those users."
	case errors.Is(err, socialgraph.ErrNoPath):
		msg = "There is no path between those users."
	case errors.Is(err, socialgraph.ErrNodeNotFound):
		msg = "That user does not exist."
	case errors.Is(err, socialgraph.ErrEmptyID):
		msg = "A user name cannot be empty."
	default:
		c.logger.Error("console action failed", "error", err)
		msg = "Error: " + err.Error()
	}
	c.println(c.st.error.Render(msg))
}

func (c *Console) ask(label string) (string, error) {
	fmt.Fprint(c.out, c.st.prompt.Render(label+": "))
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// askUser reads a user id in the normalized form the graph stores.
func (c *Console) askUser(label string) (string, error) {
	text, err := c.ask(label)
	if err != nil {
		return "", err
	}
	return socialgraph.NormalizeID(text)
}

func (c *Console) println(line string) {
	fmt.Fprintln(c.out, line)
}
