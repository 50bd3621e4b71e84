package server

import (
	"github.com/gin-gonic/gin"
	hoteldomain "github.com/smallbiznis/hotelproducts/internal/hotel/domain"
)

func (s *Server) GetHotelProducts(c *gin.Context) {
	products, err := s.hotelSvc.GetHotelProducts(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, hoteldomain.MessageProductsRetrieved, products)
}

func (s *Server) GetHotelReservations(c *gin.Context) {
	groups, err := s.hotelSvc.GetReservations(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, hoteldomain.MessageReservationsRetrieved, groups)
}
