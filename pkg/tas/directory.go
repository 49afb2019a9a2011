package tas

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	defaultSOAPNamespace = "http://tempuri.org/"
	directoryPath        = "/TASWebService/PortalService.asmx"
)

var apiSuffix = regexp.MustCompile(`/api[\-a-z]*$`)

// directoryURL maps ".../api" (or "/api-test", ...) onto the SOAP endpoint
// that sits next to it. A base URL without that suffix gets the path
// appended.
func (c *Client) directoryURL() string {
	if apiSuffix.MatchString(c.baseURL) {
		return apiSuffix.ReplaceAllLiteralString(c.baseURL, directoryPath)
	}
	return c.baseURL + directoryPath
}

type soapEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    soapBody `xml:"Body"`
}

type soapBody struct {
	Fault        *soapFault               `xml:"Fault"`
	Countries    *getCountriesResponse    `xml:"GetCountriesResponse"`
	Institutions *getInstitutionsResponse `xml:"GetInstitutionsResponse"`
}

type soapFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

type getCountriesResponse struct {
	Result struct {
		Country []soapCountry `xml:"Country"`
	} `xml:"GetCountriesResult"`
}

type soapCountry struct {
	ID      int64  `xml:"ID"`
	Name    string `xml:"Name"`
	ISOCode string `xml:"ISOCode"`
}

type getInstitutionsResponse struct {
	Result struct {
		Institution []soapInstitution `xml:"Institution"`
	} `xml:"GetInstitutionsResult"`
}

type soapInstitution struct {
	ID         int64         `xml:"ID"`
	Name       string        `xml:"Name"`
	Selectable bool          `xml:"Selectable"`
	Children   *soapChildren `xml:"Children"`
}

type soapChildren struct {
	Institution []soapInstitution `xml:"Institution"`
}

func (s soapInstitution) node() deptNode {
	active := s.Selectable
	n := deptNode{ID: s.ID, Name: s.Name, Active: &active}
	if s.Children != nil {
		n.Children = make([]deptNode, 0, len(s.Children.Institution))
		for _, ch := range s.Children.Institution {
			n.Children = append(n.Children, ch.node())
		}
	}
	return n
}

const soapRequestTemplate = `<?xml version="1.0" encoding="utf-8"?>` +
	`<soap:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">` +
	`<soap:Body><%s xmlns="%s" /></soap:Body></soap:Envelope>`

// soapCall invokes a parameterless directory operation and decodes the body.
func (c *Client) soapCall(ctx context.Context, op, action string) (*soapBody, error) {
	var ns bytes.Buffer
	if err := xml.EscapeText(&ns, []byte(c.soapNS)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, invalidArgf("directory namespace: %v", err))
	}

	reqID := uuid.NewString()
	req := &Request{
		Method:   http.MethodPost,
		URL:      c.directoryURL(),
		Header:   http.Header{},
		Body:     []byte(fmt.Sprintf(soapRequestTemplate, action, ns.String())),
		Username: c.creds.Username,
		Password: c.creds.Secret,
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `"`+strings.TrimRight(c.soapNS, "/")+"/"+action+`"`)
	req.Header.Set("X-Request-Id", reqID)

	log := c.logger.With("op", op, "request_id", reqID)
	log.Debug(ctx, "directory request", "action", action)

	resp, err := c.transport.Send(ctx, req)
	if err != nil {
		err = &TransportError{Err: err}
		log.Warn(ctx, "directory request failed", "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	body, err := resolveSOAP(resp.StatusCode, resp.Body)
	if err != nil {
		log.Warn(ctx, "directory request failed", "status", resp.StatusCode, "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return body, nil
}

// resolveSOAP is the SOAP counterpart of ResolveEnvelope: a Fault becomes a
// *RemoteError, an unreadable body is a transport or protocol failure
// depending on the status code.
func resolveSOAP(statusCode int, raw []byte) (*soapBody, error) {
	ok2xx := statusCode >= 200 && statusCode < 300

	var env soapEnvelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		if !ok2xx {
			return nil, &TransportError{StatusCode: statusCode, Body: raw}
		}
		return nil, &ProtocolError{StatusCode: statusCode, Body: raw, Reason: "response is not a SOAP envelope", Err: err}
	}
	if env.Body.Fault != nil {
		return nil, &RemoteError{StatusCode: statusCode, Message: env.Body.Fault.String}
	}
	if !ok2xx {
		return nil, &TransportError{StatusCode: statusCode, Body: raw}
	}
	return &env.Body, nil
}

// Countries lists countries from the legacy directory service.
func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	const op = "countries"
	body, err := c.soapCall(ctx, op, "GetCountries")
	if err != nil {
		return nil, err
	}
	if body.Countries == nil {
		return nil, fmt.Errorf("%s: %w", op, &ProtocolError{Reason: "missing GetCountriesResponse"})
	}

	out := make([]Country, 0, len(body.Countries.Result.Country))
	for _, ct := range body.Countries.Result.Country {
		out = append(out, Country{ID: ct.ID, Name: ct.Name, Abbrev: ct.ISOCode})
	}
	return out, nil
}

// DirectoryInstitutions lists institutions from the legacy directory service,
// each with its department hierarchy flattened into Children.
func (c *Client) DirectoryInstitutions(ctx context.Context) ([]Institution, error) {
	const op = "directory institutions"
	body, err := c.soapCall(ctx, op, "GetInstitutions")
	if err != nil {
		return nil, err
	}
	if body.Institutions == nil {
		return nil, fmt.Errorf("%s: %w", op, &ProtocolError{Reason: "missing GetInstitutionsResponse"})
	}

	list := body.Institutions.Result.Institution
	out := make([]Institution, 0, len(list))
	for _, inst := range list {
		n := inst.node()
		out = append(out, Institution{
			ID:       n.ID,
			Name:     n.Name,
			Active:   n.Active,
			Children: flattenDepartments(n.Children),
		})
	}
	return out, nil
}
