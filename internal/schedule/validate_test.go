package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEntry(t *testing.T) {
	days := []string{"Monday", "Friday"}

	assert.NoError(t, ValidateEntry("P1", "09:00", "17:00", days, 1))
	assert.NoError(t, ValidateEntry("P1", "00:00", "23:59", days, 10))

	// overnight windows are accepted; they exist in legacy data and simply
	// never match
	assert.NoError(t, ValidateEntry("P1", "22:00", "02:00", days, 1))

	assert.Error(t, ValidateEntry("", "09:00", "17:00", days, 1))
	assert.Error(t, ValidateEntry("P1", "9:00", "17:00", days, 1))
	assert.Error(t, ValidateEntry("P1", "24:00", "17:00", days, 1))
	assert.Error(t, ValidateEntry("P1", "09:00", "17:60", days, 1))
	assert.Error(t, ValidateEntry("P1", "09:00", "17:00", days, 0))
	assert.Error(t, ValidateEntry("P1", "09:00", "17:00", []string{"Funday"}, 1))

	var verr ValidationError
	err := ValidateEntry("P1", "bad", "17:00", days, 1)
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "start_time", verr.Field)
}
