package cache

import (
	"time"

	"github.com/ibeloyar/oilcheckout/internal/model"
)

const (
	ShopConfigTTL    = 10 * time.Minute
	shopConfigPrefix = "shop_config:"
)

func ShopConfigKey(shopID string) string {
	return shopConfigPrefix + shopID
}

func (c *Cache) GetCachedShopConfig(shopID string) (model.ShopConfigRecord, bool) {
	return Get[model.ShopConfigRecord](c, ShopConfigKey(shopID))
}

func (c *Cache) SetCachedShopConfig(shopID string, config model.ShopConfigRecord) {
	c.Set(ShopConfigKey(shopID), config, ShopConfigTTL)
}
