package api

import (
	"context"
	"fmt"
	"net/http"
)

// UploadMedia attaches a media file to an event.
func (c *Client) UploadMedia(ctx context.Context, eventID string, file Upload, caption string) (*Media, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if eventID == "" {
		return nil, fmt.Errorf("event id required")
	}
	if len(file.Content) == 0 {
		return nil, fmt.Errorf("media file is empty")
	}
	fields := map[string]string{}
	if caption != "" {
		fields["caption"] = caption
	}
	form, contentType, err := multipartForm(fields, map[string]Upload{"media": file})
	if err != nil {
		return nil, err
	}
	var payload Media
	path := "/event/" + eventID + "/media"
	if err := c.doForm(ctx, http.MethodPost, path, form, contentType, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteMedia removes a media item from an event.
func (c *Client) DeleteMedia(ctx context.Context, eventID, mediaID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if eventID == "" || mediaID == "" {
		return fmt.Errorf("event and media ids required")
	}
	return c.doJSON(ctx, http.MethodDelete, "/event/"+eventID+"/media/"+mediaID, nil, nil, requestOpts{})
}
