package models

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gotas/pkg/tas"
)

const projectResponse = `{
    "message": null,
    "result": {
        "allocations": [
            {
                "computeAllocated": 50000,
                "computeRequested": 50000,
                "computeUsed": 52774.149,
                "dateRequested": "2014-01-20T19:00:12Z",
                "dateReviewed": "2014-01-20T19:00:12Z",
                "decisionSummary": "Automatic TG AMIE approval.",
                "end": "2015-01-20T06:00:00Z",
                "id": 22119,
                "justification": "TeraGrid 'New' allocation.",
                "memoryAllocated": 0,
                "memoryRequested": 0,
                "project": "TG-MCB140064",
                "projectId": 23567,
                "requestor": "Lane Votapka",
                "requestorId": 17033,
                "resource": "Stampede3",
                "resourceId": 31,
                "reviewer": null,
                "reviewerId": 0,
                "start": "2014-01-21T06:00:00Z",
                "status": "Active",
                "storageAllocated": 0,
                "storageRequested": 0
            }
        ],
        "chargeCode": "lorem-ipsum",
        "description": "Lorem ipsum.",
        "field": "Biophysics",
        "fieldId": 105,
        "gid": 123000,
        "id": 123,
        "pi": {
            "citizenship": "United States",
            "citizenshipId": 230,
            "country": "United States",
            "countryId": 230,
            "department": null,
            "departmentId": 0,
            "email": "pi.user@example.com",
            "emailConfirmations": [],
            "firstName": "PI",
            "id": 17033,
            "institution": "University College",
            "institutionId": 999,
            "lastName": "User",
            "phone": null,
            "piEligibility": "Eligible",
            "source": "Standard",
            "title": null,
            "username": "piuser"
        },
        "piId": 999999,
        "source": "Standard",
        "title": "Lorem ipsum",
        "type": "Research",
        "typeId": 0
    },
    "status": "success"
}`

// projectRecord is the result of projectResponse decoded the way the client
// decodes it.
func projectRecord(t *testing.T) tas.Record {
	t.Helper()
	raw, err := tas.ResolveEnvelope(http.StatusOK, []byte(projectResponse))
	require.NoError(t, err)
	rec, err := tas.DecodeRecord(raw)
	require.NoError(t, err)
	return rec
}
