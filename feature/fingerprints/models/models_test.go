package models_test

import (
	"testing"

	"github.com/Spritualkb/xingrin/feature/fingerprints/models"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintModels(t *testing.T) {
	t.Run("Ehole", func(t *testing.T) {
		m := models.EholeFingerprint{Name: "Nginx"}
		assert.Equal(t, "ehole_fingerprints", m.TableName())
		assert.Equal(t, "Nginx", m.UniqueKey())
	})

	t.Run("Goby", func(t *testing.T) {
		m := models.GobyFingerprint{Name: "Tomcat"}
		assert.Equal(t, "goby_fingerprints", m.TableName())
		assert.Equal(t, "Tomcat", m.UniqueKey())
	})

	t.Run("Wappalyzer", func(t *testing.T) {
		m := models.WappalyzerFingerprint{Name: "WordPress"}
		assert.Equal(t, "wappalyzer_fingerprints", m.TableName())
		assert.Equal(t, "WordPress", m.UniqueKey())
	})

	t.Run("Fingers", func(t *testing.T) {
		m := models.FingersFingerprint{Name: "redis"}
		assert.Equal(t, "fingers_fingerprints", m.TableName())
		assert.Equal(t, "redis", m.UniqueKey())
	})

	t.Run("FingerPrintHub", func(t *testing.T) {
		// The identifying field is the template id, not the display name.
		m := models.FingerPrintHubFingerprint{FpID: "wordpress-detect", Name: "WordPress"}
		assert.Equal(t, "fingerprinthub_fingerprints", m.TableName())
		assert.Equal(t, "wordpress-detect", m.UniqueKey())
	})

	t.Run("ARL", func(t *testing.T) {
		m := models.ARLFingerprint{Name: "GitLab"}
		assert.Equal(t, "arl_fingerprints", m.TableName())
		assert.Equal(t, "GitLab", m.UniqueKey())
	})
}

func TestAllListsEveryModel(t *testing.T) {
	assert.Len(t, models.All(), 6)
}
