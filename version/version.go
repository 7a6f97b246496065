// Package version looks up the latest crosswatch release on GitHub.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/crosswatch-cli/crosswatch/constant"
	"github.com/crosswatch-cli/crosswatch/filesystem"
	"github.com/crosswatch-cli/crosswatch/network"
	"github.com/crosswatch-cli/crosswatch/util"
	"github.com/crosswatch-cli/crosswatch/where"
	"github.com/metafates/gache"
)

var (
	versionCacher     *gache.Cache[string]
	versionCacherOnce sync.Once

	releasesURL = "https://api.github.com/repos/" + constant.Repository + "/releases/latest"
)

// checkTimeout bounds the release lookup so help and version output never hang on it.
const checkTimeout = 3 * time.Second

func cacher() *gache.Cache[string] {
	versionCacherOnce.Do(func() {
		versionCacher = gache.New[string](&gache.Options{
			Path:       filepath.Join(where.Cache(), "version.json"),
			Lifetime:   time.Hour * 24 * 2,
			FileSystem: &filesystem.GacheFs{},
		})
	})
	return versionCacher
}

// Latest returns the newest released version, without the leading "v".
// Answers are cached for two days.
func Latest() (version string, err error) {
	ver, expired, err := cacher().Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releasesURL, nil)
	if err != nil {
		return
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := network.Client.Do(req)
	if err != nil {
		return
	}

	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases: unexpected status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	err = json.NewDecoder(resp.Body).Decode(&release)
	if err != nil {
		return
	}

	if release.TagName == "" {
		err = errors.New("empty tag name")
		return
	}

	version = strings.TrimPrefix(release.TagName, "v")
	_ = cacher().Set(version)
	return
}
