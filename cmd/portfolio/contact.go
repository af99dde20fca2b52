package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhinavshiv7/portfolio/internal/contact"
	"github.com/abhinavshiv7/portfolio/internal/store"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send or inspect contact submissions",
}

var (
	sendURL     string
	sendTimeout time.Duration
	sendDraft   contact.Submission
	listLimit   int
)

var contactSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit the contact form to a running site",
	Long: `Send validates the form locally, exactly as the browser form does, and
posts it to the site's /api/contact endpoint. Nothing is sent when local
validation fails.

Example:
  portfolio contact send --name "Jane Doe" --email jane@example.com --message "Hi!"`,
	RunE: runContactSend,
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored contact submissions, newest first",
	RunE:  runContactList,
}

func init() {
	f := contactSendCmd.Flags()
	f.StringVar(&sendURL, "url", "http://localhost:8080", "base URL of the site")
	f.DurationVar(&sendTimeout, "timeout", 0, "request timeout (default CONTACT_TIMEOUT)")
	f.StringVar(&sendDraft.Name, "name", "", "your name")
	f.StringVar(&sendDraft.Email, "email", "", "your email address")
	f.StringVar(&sendDraft.Company, "company", "", "company (optional)")
	f.StringVar(&sendDraft.WhatsApp, "whatsapp", "", "WhatsApp number (optional)")
	f.StringVar(&sendDraft.Message, "message", "", "message (optional)")

	contactListCmd.Flags().IntVar(&listLimit, "limit", 20, "maximum number of records")

	contactCmd.AddCommand(contactSendCmd)
	contactCmd.AddCommand(contactListCmd)
}

func runContactSend(cmd *cobra.Command, args []string) error {
	timeout := cfg.ContactTimeout
	if sendTimeout > 0 {
		timeout = sendTimeout
	}

	form := contact.NewForm(contact.NewClient(sendURL, timeout))
	form.SetDraft(sendDraft)
	out, err := form.Submit(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, out.Notice.Title)
	fmt.Fprintln(w, out.Notice.Description)
	if out.Invalid != nil {
		for _, fe := range out.Invalid.Fields {
			fmt.Fprintf(w, "  %s: %s\n", fe.Field, fe.Message)
		}
	}
	if out.Err != nil {
		logger.Debug().Err(out.Err).Msg("submission failed")
	}
	if out.Status != contact.OutcomeSent {
		return errors.New("message not sent")
	}
	return nil
}

func runContactList(cmd *cobra.Command, args []string) error {
	st, err := store.Open(cmd.Context(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	records, err := st.ListContacts(cmd.Context(), listLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No contacts yet.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RECEIVED\tNAME\tEMAIL\tCOMPANY\tWHATSAPP")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Name, r.Email, r.Company, r.WhatsApp)
	}
	return tw.Flush()
}
