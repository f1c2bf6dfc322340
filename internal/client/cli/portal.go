package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/uni-jay/ican-portal/internal/client/models"
)

// Profile edits the member's name and phone. Empty answers keep the
// current value.
func (a *App) Profile(ctx context.Context) error {
	var update models.ProfileUpdate
	var err error

	if update.Name, err = getSimpleText(a.reader, "New name (empty to keep)", a.out); err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "New phone number (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if phone != "" {
		if update.Phone, err = normalizePhone(phone); err != nil {
			return err
		}
	}
	if update == (models.ProfileUpdate{}) {
		fmt.Fprintln(a.out, "Nothing to update.")
		return nil
	}

	u, err := a.portal.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Profile updated: %s, %s\n", u.Name, u.Phone)
	return nil
}

func (a *App) Transactions(ctx context.Context) error {
	txs, err := a.portal.Transactions(ctx)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Fprintln(a.out, "No transactions.")
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tSTATUS\tDESCRIPTION")
	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n", tx.CreatedAt.Format("2006-01-02"), tx.Type, tx.Amount, tx.Status, tx.Description)
	}
	return w.Flush()
}

func (a *App) Events(ctx context.Context) error {
	evs, err := a.portal.Events(ctx)
	if err != nil {
		return err
	}
	if len(evs) == 0 {
		fmt.Fprintln(a.out, "No upcoming events.")
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTITLE\tLOCATION\tFEE\tCPD\t")
	for _, ev := range evs {
		mark := ""
		if ev.Registered {
			mark = "registered"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%d\t%s\n",
			ev.ID, ev.StartsAt.Format("2006-01-02 15:04"), ev.Title, ev.Location, ev.Fee, ev.CPDCredits, mark)
	}
	return w.Flush()
}

func (a *App) JoinEvent(ctx context.Context, eventID string) error {
	ev, err := a.portal.JoinEvent(ctx, eventID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered for %q.\n", ev.Title)
	return nil
}

func (a *App) CPD(ctx context.Context) error {
	mods, err := a.portal.CPDModules(ctx)
	if err != nil {
		return err
	}
	total := 0
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCREDITS\tPROGRESS")
	for _, m := range mods {
		progress := fmt.Sprintf("%d%%", m.Progress)
		if m.Completed {
			progress = "done"
			total += m.Credits
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", m.ID, m.Title, m.Credits, progress)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Credits earned: %d\n", total)
	return nil
}

func (a *App) Elections(ctx context.Context) error {
	els, err := a.portal.Elections(ctx)
	if err != nil {
		return err
	}
	if len(els) == 0 {
		fmt.Fprintln(a.out, "No elections.")
		return nil
	}
	for _, el := range els {
		state := "closed"
		switch {
		case el.HasVoted:
			state = "voted"
		case el.Open:
			state = "open"
		}
		fmt.Fprintf(a.out, "[%s] %s (%s)\n", el.ID, el.Title, state)
		for _, c := range el.Candidates {
			fmt.Fprintf(a.out, "    %s  %s, %s\n", c.ID, c.Name, c.Position)
		}
	}
	return nil
}

func (a *App) Vote(ctx context.Context, electionID, candidateID string) error {
	if err := a.portal.Vote(ctx, electionID, candidateID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Vote recorded.")
	return nil
}

func (a *App) Chat(ctx context.Context) error {
	msgs, err := a.portal.ChatMessages(ctx)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		fmt.Fprintln(a.out, "No messages yet.")
		return nil
	}
	for _, m := range msgs {
		fmt.Fprintf(a.out, "%s %s: %s\n", m.SentAt.Format("15:04"), m.SenderName, m.Content)
	}
	return nil
}

// Send posts text to the chat, prompting for a multi-line message when
// text is empty.
func (a *App) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		var err error
		if text, err = getMultiline(a.reader, "Enter message", a.out); err != nil {
			return err
		}
	}
	m, err := a.portal.SendChatMessage(ctx, text)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Sent (%s).\n", m.ID)
	return nil
}
