package upstream

import (
	"context"
	"errors"
	"net/http"

	"sautiai-dashboard/internal/contacts"
)

// ListContacts fetches every contact in the workspace. On connectivity
// failure the caller may degrade to an empty list; that decision is left to
// the caller so list screens can still show a retry banner.
func (c *Client) ListContacts(ctx context.Context, workspaceID string) ([]contacts.Contact, error) {
	if workspaceID == "" {
		return nil, errors.New("upstream: workspace_id required")
	}
	var env listEnvelope[contacts.Contact]
	if err := c.do(ctx, http.MethodGet, "/contacts", workspaceQuery(workspaceID), nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

func (c *Client) GetContact(ctx context.Context, workspaceID, contactID string) (contacts.Contact, error) {
	if workspaceID == "" || contactID == "" {
		return contacts.Contact{}, errors.New("upstream: workspace_id and contact id required")
	}
	var out contacts.Contact
	if err := c.do(ctx, http.MethodGet, "/contacts/"+contactID, workspaceQuery(workspaceID), nil, &out); err != nil {
		return contacts.Contact{}, err
	}
	return out, nil
}

func (c *Client) CreateContact(ctx context.Context, workspaceID string, in contacts.Contact) (contacts.Contact, error) {
	if workspaceID == "" {
		return contacts.Contact{}, errors.New("upstream: workspace_id required")
	}
	in.WorkspaceID = workspaceID
	var out contacts.Contact
	if err := c.do(ctx, http.MethodPost, "/contacts", workspaceQuery(workspaceID), in, &out); err != nil {
		return contacts.Contact{}, err
	}
	return out, nil
}

func (c *Client) UpdateContact(ctx context.Context, workspaceID string, in contacts.Contact) (contacts.Contact, error) {
	if workspaceID == "" || in.ID == "" {
		return contacts.Contact{}, errors.New("upstream: workspace_id and contact id required")
	}
	in.WorkspaceID = workspaceID
	var out contacts.Contact
	if err := c.do(ctx, http.MethodPut, "/contacts/"+in.ID, workspaceQuery(workspaceID), in, &out); err != nil {
		return contacts.Contact{}, err
	}
	return out, nil
}

func (c *Client) DeleteContact(ctx context.Context, workspaceID, contactID string) error {
	if workspaceID == "" || contactID == "" {
		return errors.New("upstream: workspace_id and contact id required")
	}
	return c.do(ctx, http.MethodDelete, "/contacts/"+contactID, workspaceQuery(workspaceID), nil, nil)
}
