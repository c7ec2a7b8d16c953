package catalog

import (
	"strings"

	"mcpmyapi-backend/internal/model"
)

// furniture 静态家具样例数据，类型和颜色与解释器提示词中的列表保持一致
var furniture = []model.CatalogItem{
	{Type: "chair", Color: "blue", Name: "Oslo Accent Chair", Description: "Compact blue accent chair with beech legs", Price: 189, ImageURL: "https://images.mcpmyapi.dev/furniture/chair-blue-oslo.jpg", Location: "Showroom A, Aisle 3"},
	{Type: "chair", Color: "blue", Name: "Fjord Dining Chair", Description: "Stackable navy dining chair, set-friendly", Price: 129, ImageURL: "https://images.mcpmyapi.dev/furniture/chair-blue-fjord.jpg", Location: "Showroom A, Aisle 4"},
	{Type: "chair", Color: "yellow", Name: "Sunny Reading Chair", Description: "Mustard wingback chair for reading corners", Price: 249, ImageURL: "https://images.mcpmyapi.dev/furniture/chair-yellow-sunny.jpg", Location: "Showroom A, Aisle 5"},
	{Type: "chair", Color: "green", Name: "Moss Lounge Chair", Description: "Forest green lounge chair with low profile", Price: 279, ImageURL: "https://images.mcpmyapi.dev/furniture/chair-green-moss.jpg", Location: "Showroom B, Aisle 1"},
	{Type: "sofa", Color: "blue", Name: "Harbor Three-Seater", Description: "Deep blue three-seat sofa with washable covers", Price: 899, ImageURL: "https://images.mcpmyapi.dev/furniture/sofa-blue-harbor.jpg", Location: "Showroom B, Aisle 2"},
	{Type: "sofa", Color: "yellow", Name: "Dune Family Sofa", Description: "Warm yellow fabric sofa, seats three", Price: 949, ImageURL: "https://images.mcpmyapi.dev/furniture/sofa-yellow-dune.jpg", Location: "Showroom B, Aisle 2"},
	{Type: "sofa", Color: "green", Name: "Fern Velvet Sofa", Description: "Emerald velvet sofa with brass feet", Price: 1099, ImageURL: "https://images.mcpmyapi.dev/furniture/sofa-green-fern.jpg", Location: "Showroom B, Aisle 3"},
	{Type: "loveseat", Color: "blue", Name: "Cove Loveseat", Description: "Two-seat loveseat in steel blue", Price: 649, ImageURL: "https://images.mcpmyapi.dev/furniture/loveseat-blue-cove.jpg", Location: "Showroom C, Aisle 1"},
	{Type: "loveseat", Color: "yellow", Name: "Amber Loveseat", Description: "Cozy amber loveseat for small spaces", Price: 599, ImageURL: "https://images.mcpmyapi.dev/furniture/loveseat-yellow-amber.jpg", Location: "Showroom C, Aisle 1"},
	{Type: "sleeper-sofa", Color: "blue", Name: "Nordic Sleeper", Description: "Blue sleeper sofa with storage drawer", Price: 1199, ImageURL: "https://images.mcpmyapi.dev/furniture/sleeper-blue-nordic.jpg", Location: "Showroom C, Aisle 2"},
	{Type: "sleeper-sofa", Color: "green", Name: "Pine Sleeper", Description: "Green fold-out sleeper, queen size", Price: 1249, ImageURL: "https://images.mcpmyapi.dev/furniture/sleeper-green-pine.jpg", Location: "Showroom C, Aisle 3"},
	{Type: "sectional", Color: "green", Name: "Meadow Sectional", Description: "Modular green sectional, five pieces", Price: 1899, ImageURL: "https://images.mcpmyapi.dev/furniture/sectional-green-meadow.jpg", Location: "Showroom D, Aisle 1"},
	{Type: "sectional", Color: "blue", Name: "Tide Sectional", Description: "L-shaped blue sectional with chaise", Price: 1799, ImageURL: "https://images.mcpmyapi.dev/furniture/sectional-blue-tide.jpg", Location: "Showroom D, Aisle 2"},
}

// Filter 按类型和颜色过滤，空串表示不限制
func Filter(itemType, color string) []model.CatalogItem {
	var result []model.CatalogItem
	for _, item := range furniture {
		if itemType != "" && item.Type != itemType {
			continue
		}
		if color != "" && item.Color != color {
			continue
		}
		result = append(result, item)
	}
	return result
}

// Lookup 按解释器输出的 "type/color" 参数列表查找，非法 token 直接跳过
func Lookup(tokens []string) []model.CatalogItem {
	var result []model.CatalogItem
	for _, token := range tokens {
		parts := strings.SplitN(strings.TrimSpace(token), "/", 2)
		if len(parts) != 2 {
			continue
		}
		result = append(result, Filter(parts[0], parts[1])...)
	}
	return result
}

// ContextData 把目录条目转换成流水线可注入的对齐数组
func ContextData(items []model.CatalogItem) *model.ContextData {
	if len(items) == 0 {
		return nil
	}

	data := &model.ContextData{
		ImageURLs:    make([]string, 0, len(items)),
		Descriptions: make([]string, 0, len(items)),
		Locations:    make([]string, 0, len(items)),
	}
	for _, item := range items {
		data.ImageURLs = append(data.ImageURLs, item.ImageURL)
		data.Descriptions = append(data.Descriptions, item.Name+" - "+item.Description)
		data.Locations = append(data.Locations, item.Location)
	}
	return data
}
